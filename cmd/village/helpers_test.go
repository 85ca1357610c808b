package main

import "github.com/heroiclabs/nakama-common/runtime"

type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{})                     {}
func (noopLogger) Info(string, ...interface{})                      {}
func (noopLogger) Warn(string, ...interface{})                      {}
func (noopLogger) Error(string, ...interface{})                     {}
func (noopLogger) WithField(string, interface{}) runtime.Logger     { return noopLogger{} }
func (noopLogger) WithFields(map[string]interface{}) runtime.Logger { return noopLogger{} }
func (noopLogger) Fields() map[string]interface{}                   { return nil }

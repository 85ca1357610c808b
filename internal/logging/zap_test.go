package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerWritesFormattedEntries(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := New(zap.New(core))

	l.WithField("seat", 1).WithFields(map[string]interface{}{"round": 5}).Warn("stale submission for round %d", 4)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.Level != zapcore.WarnLevel || e.Message != "stale submission for round 4" {
		t.Fatalf("entry = %v %q", e.Level, e.Message)
	}
	ctx := e.ContextMap()
	if ctx["seat"] != int64(1) || ctx["round"] != int64(5) {
		t.Fatalf("context = %v", ctx)
	}
}

func TestLoggerFieldsAreCopied(t *testing.T) {
	core, _ := observer.New(zapcore.InfoLevel)
	base := New(zap.New(core))
	child := base.WithField("room", "abc")

	if len(base.Fields()) != 0 {
		t.Fatalf("parent gained fields: %v", base.Fields())
	}
	f := child.Fields()
	f["room"] = "mutated"
	if child.Fields()["room"] != "abc" {
		t.Fatal("Fields() must return a copy")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{in: "", want: zapcore.InfoLevel},
		{in: "DEBUG", want: zapcore.DebugLevel},
		{in: "warn", want: zapcore.WarnLevel},
		{in: "loud", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseLevel(%q) err = %v", tt.in, err)
		}
		if !tt.wantErr && got != tt.want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

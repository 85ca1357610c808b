// Package proto holds the wire messages shared by hosted rooms and clients.
package proto

//go:generate protoc --go_out=. --go_opt=paths=source_relative village.proto

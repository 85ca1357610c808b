package storage

import (
	"testing"

	"github.com/Bokan96/VillagePillage/internal/domain"
	"github.com/Bokan96/VillagePillage/internal/ports"
)

func TestEncodeWritesEmptyWinnersArray(t *testing.T) {
	cols, err := Encode(domain.RoundOutcome{Round: 3})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if string(cols.Winners) != "[]" {
		t.Fatalf("winners column = %s, want []", cols.Winners)
	}

	var rec ports.RoundRecord
	if err := Decode(cols, &rec); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if rec.Winners != nil {
		t.Fatalf("winners = %v, want nil", rec.Winners)
	}
}

func TestDecodeRejectsCorruptColumns(t *testing.T) {
	cols, err := Encode(domain.RoundOutcome{Round: 1, Winners: []int{2}})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	cols.Resources = []byte("{")
	var rec ports.RoundRecord
	if err := Decode(cols, &rec); err == nil {
		t.Fatal("expected decode error")
	}
}

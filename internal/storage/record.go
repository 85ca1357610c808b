// Package storage holds what the SQL history stores share: the JSON column
// encoding of a resolved round.
package storage

import (
	"encoding/json"
	"fmt"

	"github.com/Bokan96/VillagePillage/internal/domain"
	"github.com/Bokan96/VillagePillage/internal/ports"
)

// Columns is a resolved round flattened into the stored JSON columns.
type Columns struct {
	Plays     []byte
	Resources []byte
	Winners   []byte
}

// Encode flattens an outcome.
func Encode(o domain.RoundOutcome) (Columns, error) {
	plays, err := json.Marshal(o.Plays)
	if err != nil {
		return Columns{}, fmt.Errorf("encode plays: %w", err)
	}
	after, err := json.Marshal(o.After)
	if err != nil {
		return Columns{}, fmt.Errorf("encode resources: %w", err)
	}
	winners := o.Winners
	if winners == nil {
		winners = []int{}
	}
	w, err := json.Marshal(winners)
	if err != nil {
		return Columns{}, fmt.Errorf("encode winners: %w", err)
	}
	return Columns{Plays: plays, Resources: after, Winners: w}, nil
}

// Decode fills the JSON parts of rec from stored columns.
func Decode(c Columns, rec *ports.RoundRecord) error {
	if err := json.Unmarshal(c.Plays, &rec.Plays); err != nil {
		return fmt.Errorf("decode plays: %w", err)
	}
	if err := json.Unmarshal(c.Resources, &rec.After); err != nil {
		return fmt.Errorf("decode resources: %w", err)
	}
	if err := json.Unmarshal(c.Winners, &rec.Winners); err != nil {
		return fmt.Errorf("decode winners: %w", err)
	}
	if len(rec.Winners) == 0 {
		rec.Winners = nil
	}
	return nil
}

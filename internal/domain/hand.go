package domain

import "sort"

// HandCard is one player's copy of a catalog card.
type HandCard struct {
	DefinitionID uint32   `json:"definition_id"`
	Type         CardType `json:"type"`
	Exhausted    bool     `json:"exhausted"`
	// RestoreAfter is the round whose Refresh makes the card selectable again.
	RestoreAfter uint32 `json:"restore_after,omitempty"`
}

// Hand is a player's cards, always kept sorted by (type, id).
type Hand []HandCard

// NewHand builds a sorted hand from catalog ids.
func NewHand(catalog *Catalog, ids []uint32) (Hand, error) {
	hand := make(Hand, 0, len(ids))
	for _, id := range ids {
		def := catalog.Get(id)
		if def == nil {
			return nil, ErrUnknownCard
		}
		hand = append(hand, HandCard{DefinitionID: id, Type: def.Type})
	}
	SortHand(hand)
	return hand, nil
}

// SortHand orders a hand by card type, then by id.
func SortHand(hand Hand) {
	sort.SliceStable(hand, func(i, j int) bool {
		if hand[i].Type != hand[j].Type {
			return hand[i].Type < hand[j].Type
		}
		return hand[i].DefinitionID < hand[j].DefinitionID
	})
}

// Clone returns an independent copy.
func (h Hand) Clone() Hand {
	return append(Hand(nil), h...)
}

// CheckSelectable reports why index cannot be assigned to a slot, if at all.
func (h Hand) CheckSelectable(index int) error {
	if index < 0 || index >= len(h) {
		return ErrInvalidIndex
	}
	if h[index].Exhausted {
		return ErrExhaustedCard
	}
	return nil
}

// Available returns the indices of cards that are not exhausted.
func (h Hand) Available() []int {
	out := make([]int, 0, len(h))
	for i, c := range h {
		if !c.Exhausted {
			out = append(out, i)
		}
	}
	return out
}

// IDs returns the definition ids in hand order.
func (h Hand) IDs() []uint32 {
	out := make([]uint32, len(h))
	for i, c := range h {
		out[i] = c.DefinitionID
	}
	return out
}

// Exhaust marks a card unusable until the Refresh of restoreAfter.
// An existing later restore round is kept.
func (h Hand) Exhaust(index int, restoreAfter uint32) {
	if index < 0 || index >= len(h) {
		return
	}
	c := &h[index]
	if c.Exhausted && c.RestoreAfter >= restoreAfter {
		return
	}
	c.Exhausted = true
	c.RestoreAfter = restoreAfter
}

// Refresh restores every card due at or before round. If fewer than minAvailable
// cards are then selectable, the earliest-due exhausted cards are restored too.
// It returns the restored indices.
func (h Hand) Refresh(round uint32, minAvailable int) []int {
	var restored []int
	for i := range h {
		if h[i].Exhausted && h[i].RestoreAfter <= round {
			h[i].Exhausted = false
			h[i].RestoreAfter = 0
			restored = append(restored, i)
		}
	}

	for len(h.Available()) < minAvailable {
		next := -1
		for i, c := range h {
			if !c.Exhausted {
				continue
			}
			if next < 0 || c.RestoreAfter < h[next].RestoreAfter {
				next = i
			}
		}
		if next < 0 {
			break
		}
		h[next].Exhausted = false
		h[next].RestoreAfter = 0
		restored = append(restored, next)
	}
	sort.Ints(restored)
	return restored
}

package app

import (
	"errors"
	"testing"

	"github.com/Bokan96/VillagePillage/internal/domain"
)

func TestAggregatorOffer(t *testing.T) {
	a := NewAggregator()
	a.Advance(5)

	tests := []struct {
		name string
		s    domain.RoundSubmission
		want OfferStatus
	}{
		{name: "current round", s: sub(5, 0, 1, 2), want: OfferAccepted},
		{name: "identical copy", s: sub(5, 0, 1, 2), want: OfferRepeated},
		{name: "conflicting duplicate", s: sub(5, 0, 3, 4), want: OfferDuplicate},
		{name: "stale", s: sub(4, 1, 1, 2), want: OfferStale},
		{name: "round zero", s: sub(0, 1, 1, 2), want: OfferStale},
		{name: "future", s: sub(6, 1, 1, 2), want: OfferBuffered},
		{name: "too far ahead", s: sub(5+MaxBufferedRounds+1, 1, 1, 2), want: OfferDropped},
		{name: "bad seat", s: sub(5, 3, 1, 2), want: OfferInvalid},
		{name: "identical buffered copy", s: sub(6, 1, 1, 2), want: OfferRepeated},
	}
	for _, tt := range tests {
		if got := a.Offer(tt.s); got != tt.want {
			t.Fatalf("%s: Offer = %v, want %v", tt.name, got, tt.want)
		}
	}
	if a.Count() != 1 || !a.Has(0) || a.Has(1) {
		t.Fatalf("count = %d", a.Count())
	}
	plays := a.rounds[5]
	if plays[0].LeftCardID != 1 {
		t.Fatal("first submission must win")
	}
	if held := a.Held(6); len(held) != 1 || held[0] != sub(6, 1, 1, 2) {
		t.Fatalf("Held(6) = %v", held)
	}
	if held := a.Held(4); held != nil {
		t.Fatalf("Held(4) = %v, want nothing", held)
	}
}

func TestAggregatorCommutative(t *testing.T) {
	subs := []domain.RoundSubmission{sub(3, 0, 1, 2), sub(3, 1, 3, 4), sub(3, 2, 2, 1)}
	orders := [][]int{{0, 1, 2}, {2, 0, 1}, {1, 2, 0}, {2, 1, 0}}

	var first [domain.SeatCount]domain.RoundSubmission
	for n, order := range orders {
		a := NewAggregator()
		a.Advance(3)
		for i, idx := range order {
			if a.Complete() {
				t.Fatalf("order %v: complete after %d", order, i)
			}
			a.Offer(subs[idx])
			a.Offer(subs[idx])
		}
		plays, ok := a.Plays()
		if !ok {
			t.Fatalf("order %v: not complete", order)
		}
		if n == 0 {
			first = plays
		} else if plays != first {
			t.Fatalf("order %v produced %v, want %v", order, plays, first)
		}
	}
}

func TestAggregatorAdvanceReplaysBuffered(t *testing.T) {
	a := NewAggregator()
	a.Advance(1)
	for seat := uint8(0); seat < 3; seat++ {
		if got := a.Offer(sub(2, seat, 1, 2)); got != OfferBuffered {
			t.Fatalf("Offer = %v, want buffered", got)
		}
	}
	a.Offer(sub(1, 0, 1, 2))
	if a.Complete() {
		t.Fatal("round 1 should not be complete")
	}
	if n := a.Advance(2); n != 3 {
		t.Fatalf("Advance replayed %d, want 3", n)
	}
	if !a.Complete() {
		t.Fatal("round 2 should be complete from the buffer")
	}
	if _, ok := a.rounds[1]; ok {
		t.Fatal("round 1 should be forgotten")
	}
	if a.Advance(1) != 0 || a.current != 2 {
		t.Fatal("Advance must not go backwards")
	}
}

func TestOfferStatusErr(t *testing.T) {
	tests := []struct {
		s    OfferStatus
		want error
	}{
		{OfferAccepted, nil},
		{OfferDuplicate, domain.ErrDuplicateSubmission},
		{OfferStale, domain.ErrStaleSubmission},
		{OfferBuffered, domain.ErrOutOfOrderSubmission},
		{OfferRepeated, domain.ErrDuplicateSubmission},
		{OfferDropped, domain.ErrSubmissionTooFarAhead},
		{OfferInvalid, domain.ErrInvalidSeat},
	}
	for _, tt := range tests {
		if got := tt.s.Err(); !errors.Is(got, tt.want) {
			t.Fatalf("%v.Err() = %v, want %v", tt.s, got, tt.want)
		}
		if tt.s != OfferAccepted && errors.Is(tt.s.Err(), domain.ErrStaleSubmission) != (tt.s == OfferStale) {
			t.Fatalf("%v must map to the stale sentinel only when stale", tt.s)
		}
	}
}

package domain

import (
	"reflect"
	"testing"
)

func TestNewTable(t *testing.T) {
	start := PlayerResources{Turnips: 1, Bank: 1, BankLimit: 5}
	table := NewTable(start, BotsForCount(2))
	for seat, r := range table.Resources {
		if r != start {
			t.Fatalf("seat %d resources = %+v", seat, r)
		}
	}
	if !reflect.DeepEqual(table.BotSeats(), []int{1, 2}) {
		t.Fatalf("BotSeats() = %v", table.BotSeats())
	}
	if table.Bots != BotsForCount(2) {
		t.Fatalf("Bots = %v", table.Bots)
	}
}

func TestTableApplyOutcomeAndRefresh(t *testing.T) {
	catalog := DefaultCatalog()
	table := NewTable(PlayerResources{BankLimit: 5}, [SeatCount]bool{})
	hand, err := NewHand(catalog, []uint32{CardFarmer, CardWall, CardRaider, CardMerchant})
	if err != nil {
		t.Fatalf("NewHand: %v", err)
	}
	table.Hands[0] = hand

	plays := [SeatCount]RoundSubmission{
		play(1, 0, CardRaider, CardFarmer),
		play(1, 1, CardWall, CardRaider),
		play(1, 2, CardRaider, CardRaider),
	}
	out, err := ResolveRound(catalog, plays, table.Resources, defaultRules)
	if err != nil {
		t.Fatalf("ResolveRound: %v", err)
	}
	table.ApplyOutcome(out)

	if table.Resources[0].Turnips != 3 {
		t.Fatalf("seat 0 turnips = %d, want 3", table.Resources[0].Turnips)
	}
	h := table.Hands[0]
	if !h[0].Exhausted || !h[2].Exhausted || h[1].Exhausted || h[3].Exhausted {
		t.Fatalf("hand after round 1 = %+v", h)
	}

	// Round 1 refresh: played cards stay out for the next round.
	if restored := table.Refresh(1); len(restored) != 0 {
		t.Fatalf("Refresh(1) restored %v", restored)
	}
	restored := table.Refresh(2)
	if !reflect.DeepEqual(restored[0], []int{0, 2}) {
		t.Fatalf("Refresh(2) restored %v", restored)
	}
}

func TestTableApplyOutcomeDuplicateIDs(t *testing.T) {
	catalog := DefaultCatalog()
	table := NewTable(PlayerResources{BankLimit: 5}, [SeatCount]bool{})
	hand, _ := NewHand(catalog, []uint32{CardFarmer, CardFarmer, CardWall})
	table.Hands[1] = hand

	plays := [SeatCount]RoundSubmission{
		play(1, 0, CardWall, CardWall),
		play(1, 1, CardFarmer, CardFarmer),
		play(1, 2, CardWall, CardWall),
	}
	out, err := ResolveRound(catalog, plays, table.Resources, defaultRules)
	if err != nil {
		t.Fatalf("ResolveRound: %v", err)
	}
	table.ApplyOutcome(out)
	h := table.Hands[1]
	if !h[0].Exhausted || !h[1].Exhausted || h[2].Exhausted {
		t.Fatalf("hand = %+v, want both farmers exhausted", h)
	}
}

package main

import (
	"testing"

	"github.com/Bokan96/VillagePillage/internal/app"
	"github.com/Bokan96/VillagePillage/internal/domain"
)

func TestRendererTracksHand(t *testing.T) {
	catalog := domain.DefaultCatalog()
	r, err := newRenderer(0, catalog, []uint32{domain.CardMerchant, domain.CardRaider, domain.CardWall, domain.CardFarmer})
	if err != nil {
		t.Fatalf("newRenderer: %v", err)
	}

	bots := domain.BotsForCount(2)
	events := []app.Event{
		{Kind: app.EventGameStarted, Round: 1, Payload: app.GameStartedPayload{Bots: bots}},
		{Kind: app.EventPhaseChanged, Round: 1, Payload: app.PhaseChangedPayload{Phase: domain.PhasePlanning, RemainingSeconds: 60}},
		{Kind: app.EventHighlightChanged, Round: 1, Payload: app.HighlightChangedPayload{Index: 0, State: domain.HighlightLeft}},
		{Kind: app.EventHighlightChanged, Round: 1, Payload: app.HighlightChangedPayload{Index: 9, State: domain.HighlightRight}},
		{Kind: app.EventCountdownTick, Round: 1, Payload: app.CountdownTickPayload{RemainingSeconds: 10}},
		{Kind: app.EventSubmit, Round: 1, Payload: app.SubmitPayload{Submission: domain.RoundSubmission{Round: 1, LeftCardID: domain.CardFarmer, RightCardID: 99}, Forced: true}},
	}
	for _, ev := range events {
		r.Handle(ev)
	}

	if r.bots != bots {
		t.Fatalf("bots = %v", r.bots)
	}
	rows := r.handRows()
	if len(rows) != 5 {
		t.Fatalf("rows = %d, want header plus 4 cards", len(rows))
	}
	if rows[1][1] != "Farmer" || rows[1][3] != "left" || rows[4][1] != "Merchant" {
		t.Fatalf("hand rows = %v", rows)
	}
	if r.cardName(99) != "#99" {
		t.Fatalf("unknown card name = %q", r.cardName(99))
	}

	hand := r.hand.Clone()
	hand[2].Exhausted = true
	hand[2].RestoreAfter = 1
	r.Handle(app.Event{Kind: app.EventHandRefreshed, Round: 1, Payload: app.HandRefreshedPayload{Hand: hand}})
	if got := r.handRows()[3][3]; got != "exhausted until round 2" {
		t.Fatalf("exhausted row = %q", got)
	}

	r.Handle(app.Event{Kind: app.EventGameEnded, Round: 3, Payload: app.GameEndedPayload{Winners: []int{0}}})
}

func TestRendererClearsHighlightsOnRefresh(t *testing.T) {
	catalog := domain.DefaultCatalog()
	r, err := newRenderer(0, catalog, []uint32{domain.CardFarmer, domain.CardWall, domain.CardRaider, domain.CardMerchant})
	if err != nil {
		t.Fatalf("newRenderer: %v", err)
	}
	r.Handle(app.Event{Kind: app.EventGameStarted, Round: 1, Payload: app.GameStartedPayload{}})
	r.Handle(app.Event{Kind: app.EventHighlightChanged, Round: 1, Payload: app.HighlightChangedPayload{Index: 1, State: domain.HighlightRight}})
	if got := r.handRows()[2][3]; got != "right" {
		t.Fatalf("highlight before refresh = %q", got)
	}

	hand := append(r.hand.Clone(), r.hand[0])
	r.Handle(app.Event{Kind: app.EventHandRefreshed, Round: 1, Payload: app.HandRefreshedPayload{Hand: hand}})
	rows := r.handRows()
	if len(rows) != len(hand)+1 {
		t.Fatalf("rows = %d", len(rows))
	}
	for _, row := range rows[1:] {
		if row[3] != "free" {
			t.Fatalf("stale highlight after refresh: %v", rows)
		}
	}
}

func TestRendererDuelLines(t *testing.T) {
	catalog := domain.DefaultCatalog()
	r, err := newRenderer(1, catalog, []uint32{domain.CardFarmer, domain.CardWall, domain.CardRaider, domain.CardMerchant})
	if err != nil {
		t.Fatalf("newRenderer: %v", err)
	}
	outcome := domain.RoundOutcome{
		Round: 4,
		Duels: []domain.Duel{
			{Seat: 0, Side: domain.SideLeft, CardID: domain.CardFarmer, OpponentCardID: domain.CardWall, Effect: domain.EffectSpec{Gain: 3}},
			{Seat: 1, Side: domain.SideLeft, CardID: domain.CardRaider, OpponentCardID: domain.CardWall},
			{Seat: 1, Side: domain.SideRight, CardID: domain.CardFarmer, OpponentCardID: domain.CardRaider, Effect: domain.EffectSpec{Gain: 3, OpponentSteals: 2}},
		},
		Exhaustions: []domain.Exhaustion{{Seat: 1, Side: domain.SideLeft, CardID: domain.CardRaider, RestoreAfter: 5}},
	}

	lines := r.duelLines(outcome)
	want := []string{
		"Raider (left) meets Wall: no effect, rests until round 6",
		"Farmer (right) meets Raider: +3 turnips, loses 2",
	}
	if len(lines) != len(want) {
		t.Fatalf("lines = %q", lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
	r.Handle(app.Event{Kind: app.EventRoundResolved, Round: 4, Payload: app.RoundResolvedPayload{Outcome: outcome}})
}

package app

import (
	"math/rand"
	"testing"
	"time"

	"github.com/heroiclabs/nakama-common/runtime"

	"github.com/Bokan96/VillagePillage/internal/domain"
)

// noopLogger implements runtime.Logger for tests that only need to satisfy the interface.
type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{})                     {}
func (noopLogger) Info(string, ...interface{})                      {}
func (noopLogger) Warn(string, ...interface{})                      {}
func (noopLogger) Error(string, ...interface{})                     {}
func (noopLogger) WithField(string, interface{}) runtime.Logger     { return noopLogger{} }
func (noopLogger) WithFields(map[string]interface{}) runtime.Logger { return noopLogger{} }
func (noopLogger) Fields() map[string]interface{}                   { return nil }

func testSettings() Settings {
	return Settings{
		TurnDuration:      60 * time.Second,
		BotActivation:     25 * time.Second,
		StartingResources: domain.PlayerResources{Turnips: 1, Bank: 1, BankLimit: 5},
		StarterHand:       []uint32{domain.CardFarmer, domain.CardWall, domain.CardRaider, domain.CardMerchant},
		Rules:             domain.Rules{RelicCost: 5, RelicsToWin: 3},
		ForcedDistinct:    true,
	}
}

func newTestEngine(t *testing.T, seat int, seed int64, mutate func(*Settings)) *Engine {
	t.Helper()
	s := testSettings()
	if mutate != nil {
		mutate(&s)
	}
	e, err := NewEngine(EngineConfig{
		Seat:     seat,
		Catalog:  domain.DefaultCatalog(),
		Settings: s,
		Rng:      rand.New(rand.NewSource(seed)),
		Logger:   noopLogger{},
	})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func startEngine(t *testing.T, e *Engine, round uint32, bots [domain.SeatCount]bool) []Event {
	t.Helper()
	evs, err := e.Start(domain.StartSignal{Round: round, BotMask: domain.BotMask(bots)})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	return evs
}

func sub(round uint32, seat uint8, left, right uint32) domain.RoundSubmission {
	return domain.RoundSubmission{Round: round, Seat: seat, LeftCardID: left, RightCardID: right}
}

func submits(evs []Event) []SubmitPayload {
	var out []SubmitPayload
	for _, ev := range evs {
		if p, ok := ev.Payload.(SubmitPayload); ok {
			out = append(out, p)
		}
	}
	return out
}

func phases(evs []Event) []domain.Phase {
	var out []domain.Phase
	for _, ev := range evs {
		if p, ok := ev.Payload.(PhaseChangedPayload); ok {
			out = append(out, p.Phase)
		}
	}
	return out
}

func countKind(evs []Event, kind EventKind) int {
	n := 0
	for _, ev := range evs {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

func outcomeOf(t *testing.T, evs []Event) domain.RoundOutcome {
	t.Helper()
	for _, ev := range evs {
		if p, ok := ev.Payload.(RoundResolvedPayload); ok {
			return p.Outcome
		}
	}
	t.Fatal("no round_resolved event")
	return domain.RoundOutcome{}
}

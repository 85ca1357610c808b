package ports

import (
	"context"
	"time"

	"github.com/Bokan96/VillagePillage/internal/domain"
)

// RoundRecord is one resolved round as stored.
type RoundRecord struct {
	Room       string                                   `json:"room"`
	Round      uint32                                   `json:"round"`
	Plays      [domain.SeatCount]domain.RoundSubmission `json:"plays"`
	After      [domain.SeatCount]domain.PlayerResources `json:"resources"`
	Winners    []int                                    `json:"winners,omitempty"`
	ResolvedAt time.Time                                `json:"resolved_at"`
}

// HistoryPort persists resolved rounds.
type HistoryPort interface {
	// AppendRound stores the outcome of one round. Appending the same (room, round)
	// twice keeps the first record.
	AppendRound(ctx context.Context, room string, outcome domain.RoundOutcome) error

	// Rounds returns up to limit records for room, newest first.
	Rounds(ctx context.Context, room string, limit int) ([]RoundRecord, error)
}

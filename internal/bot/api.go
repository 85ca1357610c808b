package bot

import (
	"math/rand"

	"github.com/Bokan96/VillagePillage/internal/domain"
)

// Move is the pair of cards a bot plays toward its neighbors.
type Move struct {
	LeftCardID  uint32
	RightCardID uint32
}

// View is what a bot is allowed to see when choosing a move.
// Hand may be nil when the bot's hand is not tracked by this process.
type View struct {
	Seat      int
	Round     uint32
	Hand      domain.Hand
	Catalog   *domain.Catalog
	Resources [domain.SeatCount]domain.PlayerResources
	Rules     domain.Rules
}

// Brain is the interface that all bot strategies must implement.
type Brain interface {
	CalculateMove(view View, rng *rand.Rand) (Move, error)
}

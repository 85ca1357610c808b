package bot

import (
	"fmt"
	"math/rand"

	"github.com/Bokan96/VillagePillage/internal/domain"
)

// Agent represents an autonomous bot player seated at the table.
type Agent struct {
	Seat     int
	Name     string
	Strategy Brain
}

// Play asks the agent for its submission for the given round.
func (a *Agent) Play(view View, rng *rand.Rand) (domain.RoundSubmission, error) {
	if !domain.ValidSeat(a.Seat) {
		return domain.RoundSubmission{}, domain.ErrInvalidSeat
	}
	view.Seat = a.Seat
	move, err := a.Strategy.CalculateMove(view, rng)
	if err != nil {
		return domain.RoundSubmission{}, fmt.Errorf("bot %s at seat %d: %w", a.Name, a.Seat, err)
	}
	sub := domain.RoundSubmission{
		Round:       view.Round,
		Seat:        uint8(a.Seat),
		LeftCardID:  move.LeftCardID,
		RightCardID: move.RightCardID,
	}
	if err := sub.Validate(view.Catalog); err != nil {
		return domain.RoundSubmission{}, fmt.Errorf("bot %s produced %s: %w", a.Name, sub, err)
	}
	return sub, nil
}

package bot

import (
	"math/rand"
	"sort"

	"github.com/Bokan96/VillagePillage/internal/domain"
)

// GreedyBot plays the two selectable cards with the best expected effect, averaged
// over the card types it might meet. Ties are broken randomly.
type GreedyBot struct {
	Tuning Tuning
}

func (b *GreedyBot) CalculateMove(view View, rng *rand.Rand) (Move, error) {
	avail := view.Hand.Available()
	if len(avail) < domain.SelectionSize {
		return (&HandBot{}).CalculateMove(view, rng)
	}

	type scored struct {
		index int
		score float64
		tie   float64
	}
	var res domain.PlayerResources
	if domain.ValidSeat(view.Seat) {
		res = view.Resources[view.Seat]
	}
	cards := make([]scored, 0, len(avail))
	for _, i := range avail {
		def := view.Catalog.Get(view.Hand[i].DefinitionID)
		cards = append(cards, scored{index: i, score: b.Tuning.ExpectedValue(def, res, view.Rules), tie: rng.Float64()})
	}
	sort.Slice(cards, func(i, j int) bool {
		if cards[i].score != cards[j].score {
			return cards[i].score > cards[j].score
		}
		return cards[i].tie < cards[j].tie
	})

	left, right := cards[0].index, cards[1].index
	if rng.Intn(2) == 1 {
		left, right = right, left
	}
	return Move{
		LeftCardID:  view.Hand[left].DefinitionID,
		RightCardID: view.Hand[right].DefinitionID,
	}, nil
}

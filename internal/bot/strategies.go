package bot

import (
	"errors"
	"math/rand"
)

var ErrNoCards = errors.New("no cards to play")

// CatalogRangeBot plays two cards drawn uniformly from the whole catalog, ignoring
// its hand. Both sides may get the same card.
type CatalogRangeBot struct{}

func (b *CatalogRangeBot) CalculateMove(view View, rng *rand.Rand) (Move, error) {
	ids := view.Catalog.IDs()
	if len(ids) == 0 {
		return Move{}, ErrNoCards
	}
	return Move{
		LeftCardID:  ids[rng.Intn(len(ids))],
		RightCardID: ids[rng.Intn(len(ids))],
	}, nil
}

// HandBot plays two distinct selectable cards from its hand, chosen uniformly.
// Without a tracked hand it falls back to the catalog range.
type HandBot struct{}

func (b *HandBot) CalculateMove(view View, rng *rand.Rand) (Move, error) {
	avail := view.Hand.Available()
	switch len(avail) {
	case 0:
		if len(view.Hand) > 0 {
			return Move{}, ErrNoCards
		}
		return (&CatalogRangeBot{}).CalculateMove(view, rng)
	case 1:
		id := view.Hand[avail[0]].DefinitionID
		return Move{LeftCardID: id, RightCardID: id}, nil
	}
	picks := rng.Perm(len(avail))
	return Move{
		LeftCardID:  view.Hand[avail[picks[0]]].DefinitionID,
		RightCardID: view.Hand[avail[picks[1]]].DefinitionID,
	}, nil
}

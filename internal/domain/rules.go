package domain

import "fmt"

// Rules are the economy constants the resolution step needs.
type Rules struct {
	RelicCost   int
	RelicsToWin int
}

// GrantKind names a market purchase granted by a card effect.
type GrantKind string

const (
	GrantCard     GrantKind = "card"
	GrantFreeCard GrantKind = "free_card"
)

// MarketGrant is a purchase right handed to the market collaborator.
type MarketGrant struct {
	Seat int       `json:"seat"`
	Side Side      `json:"side"`
	Kind GrantKind `json:"kind"`
}

// Duel is one card meeting the card played back against it.
type Duel struct {
	Seat           int        `json:"seat"`
	Side           Side       `json:"side"`
	Opponent       int        `json:"opponent"`
	CardID         uint32     `json:"card_id"`
	OpponentCardID uint32     `json:"opponent_card_id"`
	Effect         EffectSpec `json:"effect"`
}

// Exhaustion tells a seat which of its played cards stays unusable and until when.
type Exhaustion struct {
	Seat         int    `json:"seat"`
	Side         Side   `json:"side"`
	CardID       uint32 `json:"card_id"`
	RestoreAfter uint32 `json:"restore_after"`
}

// RoundOutcome is the full result of resolving one round.
type RoundOutcome struct {
	Round        uint32                     `json:"round"`
	Plays        [SeatCount]RoundSubmission `json:"plays"`
	Duels        []Duel                     `json:"duels"`
	Before       [SeatCount]PlayerResources `json:"before"`
	After        [SeatCount]PlayerResources `json:"after"`
	RelicsBought [SeatCount]int             `json:"relics_bought"`
	Grants       []MarketGrant              `json:"grants,omitempty"`
	Exhaustions  []Exhaustion               `json:"exhaustions"`
	Winners      []int                      `json:"winners,omitempty"`
}

// ExhaustionFor returns the exhaustion recorded for seat's card on side.
func (o RoundOutcome) ExhaustionFor(seat int, side Side) (Exhaustion, bool) {
	for _, e := range o.Exhaustions {
		if e.Seat == seat && e.Side == side {
			return e, true
		}
	}
	return Exhaustion{}, false
}

// Duels pairs every seat's two cards with the cards its neighbors played back.
// Seat order is ascending, left before right.
func Duels(catalog *Catalog, plays [SeatCount]RoundSubmission) ([]Duel, error) {
	duels := make([]Duel, 0, SeatCount*2)
	for seat := 0; seat < SeatCount; seat++ {
		for _, side := range []Side{SideLeft, SideRight} {
			opponent := Neighbor(seat, side)
			mine := catalog.Get(plays[seat].CardToward(side))
			theirs := catalog.Get(plays[opponent].CardToward(side.Other()))
			if mine == nil || theirs == nil {
				return nil, fmt.Errorf("seat %d %s duel: %w", seat, side, ErrUnknownCard)
			}
			duels = append(duels, Duel{
				Seat:           seat,
				Side:           side,
				Opponent:       opponent,
				CardID:         mine.ID,
				OpponentCardID: theirs.ID,
				Effect:         mine.EffectAgainst(theirs.Type),
			})
		}
	}
	return duels, nil
}

// ResolveRound applies every duel to the given resources.
//
// Numeric effects run first, in passes: gains, bank deltas, then steals and
// opponent steals. Flag effects (opponent gains, relic purchase, market grants,
// exhausting the opposing card) run after all numbers settle. Every played card
// is exhausted until the Refresh of the next round.
func ResolveRound(catalog *Catalog, plays [SeatCount]RoundSubmission, resources [SeatCount]PlayerResources, rules Rules) (RoundOutcome, error) {
	round := plays[0].Round
	for seat, p := range plays {
		if int(p.Seat) != seat {
			return RoundOutcome{}, fmt.Errorf("play %d carries seat %d: %w", seat, p.Seat, ErrInvalidSeat)
		}
		if p.Round != round {
			return RoundOutcome{}, fmt.Errorf("seat %d played round %d, want %d", seat, p.Round, round)
		}
	}

	duels, err := Duels(catalog, plays)
	if err != nil {
		return RoundOutcome{}, err
	}

	out := RoundOutcome{Round: round, Plays: plays, Duels: duels, Before: resources}
	res := resources

	for _, d := range duels {
		res[d.Seat].Turnips += d.Effect.Gain
	}
	for _, d := range duels {
		res[d.Seat].AddBank(d.Effect.Bank)
	}
	for _, d := range duels {
		res[d.Seat].Turnips += res[d.Opponent].Take(d.Effect.Steal)
		res[d.Opponent].Turnips += res[d.Seat].Take(d.Effect.OpponentSteals)
	}

	exhaust := make(map[[2]int]Exhaustion, SeatCount*2)
	for seat, p := range plays {
		for _, side := range []Side{SideLeft, SideRight} {
			exhaust[[2]int{seat, int(side)}] = Exhaustion{Seat: seat, Side: side, CardID: p.CardToward(side), RestoreAfter: round + 1}
		}
	}

	for _, d := range duels {
		e := d.Effect
		if e.OpponentGains {
			res[d.Opponent].Turnips++
		}
		if e.BuyRelic && res[d.Seat].Spend(rules.RelicCost) {
			res[d.Seat].Relics++
			out.RelicsBought[d.Seat]++
		}
		if e.BuyCard {
			out.Grants = append(out.Grants, MarketGrant{Seat: d.Seat, Side: d.Side, Kind: GrantCard})
		}
		if e.FreeCard {
			out.Grants = append(out.Grants, MarketGrant{Seat: d.Seat, Side: d.Side, Kind: GrantFreeCard})
		}
		if e.ExhaustOpp {
			key := [2]int{d.Opponent, int(d.Side.Other())}
			ex := exhaust[key]
			ex.RestoreAfter = round + 2
			exhaust[key] = ex
		}
	}

	for seat := 0; seat < SeatCount; seat++ {
		for _, side := range []Side{SideLeft, SideRight} {
			out.Exhaustions = append(out.Exhaustions, exhaust[[2]int{seat, int(side)}])
		}
	}

	out.After = res
	if rules.RelicsToWin > 0 {
		for seat, r := range res {
			if r.Relics >= rules.RelicsToWin {
				out.Winners = append(out.Winners, seat)
			}
		}
	}
	return out, nil
}

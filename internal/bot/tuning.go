package bot

import "github.com/Bokan96/VillagePillage/internal/domain"

// Tuning weighs each part of an effect when a bot values a card.
type Tuning struct {
	Gain           float64
	Steal          float64
	Bank           float64
	OpponentSteals float64
	OpponentGains  float64
	// Relic applies only when the bot can afford one.
	Relic           float64
	BuyCard         float64
	FreeCard        float64
	ExhaustOpponent float64
}

// DefaultTuning favours relics when affordable and turnips otherwise.
var DefaultTuning = Tuning{
	Gain:            1.0,
	Steal:           1.1,
	Bank:            0.6,
	OpponentSteals:  -1.0,
	OpponentGains:   -0.5,
	Relic:           6.0,
	BuyCard:         0.5,
	FreeCard:        0.8,
	ExhaustOpponent: 0.7,
}

// Score values one effect for a player holding res.
func (t Tuning) Score(e domain.EffectSpec, res domain.PlayerResources, rules domain.Rules) float64 {
	s := t.Gain*float64(e.Gain) +
		t.Steal*float64(e.Steal) +
		t.Bank*float64(min(e.Bank, res.BankLimit-res.Bank)) +
		t.OpponentSteals*float64(e.OpponentSteals)
	if e.OpponentGains {
		s += t.OpponentGains
	}
	if e.BuyRelic && res.Turnips+res.Bank >= rules.RelicCost {
		s += t.Relic
	}
	if e.BuyCard {
		s += t.BuyCard
	}
	if e.FreeCard {
		s += t.FreeCard
	}
	if e.ExhaustOpp {
		s += t.ExhaustOpponent
	}
	return s
}

// ExpectedValue averages Score over every card type the card might meet.
func (t Tuning) ExpectedValue(def *domain.CardDefinition, res domain.PlayerResources, rules domain.Rules) float64 {
	if def == nil {
		return 0
	}
	var total float64
	for _, ct := range domain.CardTypes {
		total += t.Score(def.EffectAgainst(ct), res, rules)
	}
	return total / float64(len(domain.CardTypes))
}

package domain

import "fmt"

// CardType is the colour family of a card. Effect tables are keyed by the
// type of the card played against the owner.
type CardType int

const (
	Green CardType = iota
	Blue
	Red
	Yellow
)

// CardTypes lists every card type in sort order.
var CardTypes = []CardType{Green, Blue, Red, Yellow}

func (t CardType) String() string {
	switch t {
	case Green:
		return "Green"
	case Blue:
		return "Blue"
	case Red:
		return "Red"
	case Yellow:
		return "Yellow"
	default:
		return fmt.Sprintf("CardType(%d)", int(t))
	}
}

func (t CardType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// EffectSpec is the outcome a card grants its owner for one opposing card type.
type EffectSpec struct {
	Gain           int  `json:"gain,omitempty"`
	Steal          int  `json:"steal,omitempty"`
	Bank           int  `json:"bank,omitempty"`
	OpponentSteals int  `json:"opponent_steals,omitempty"`
	OpponentGains  bool `json:"opponent_gains,omitempty"`
	BuyRelic       bool `json:"buy_relic,omitempty"`
	BuyCard        bool `json:"buy_card,omitempty"`
	FreeCard       bool `json:"free_card,omitempty"`
	ExhaustOpp     bool `json:"exhaust_opponent,omitempty"`
}

// IsZero reports whether the effect does nothing.
func (e EffectSpec) IsZero() bool {
	return e == EffectSpec{}
}

// CardDefinition is an immutable catalog entry shared by every player.
type CardDefinition struct {
	ID      uint32
	Name    string
	Type    CardType
	Effects map[CardType]EffectSpec
}

// EffectAgainst returns the effect this card grants when it meets a card of the given type.
// Missing entries mean no effect.
func (c *CardDefinition) EffectAgainst(opponent CardType) EffectSpec {
	if c == nil {
		return EffectSpec{}
	}
	return c.Effects[opponent]
}

package domain

import (
	"fmt"
	"sort"
)

// Starter card ids.
const (
	CardFarmer   uint32 = 1
	CardWall     uint32 = 2
	CardRaider   uint32 = 3
	CardMerchant uint32 = 4
)

// Catalog is the read-only registry of card definitions keyed by id.
// It is built once at start-up and shared by every component.
type Catalog struct {
	cards map[uint32]*CardDefinition
	ids   []uint32
}

// NewCatalog builds a catalog from the given definitions.
// Ids must be positive and unique.
func NewCatalog(defs ...CardDefinition) (*Catalog, error) {
	c := &Catalog{cards: make(map[uint32]*CardDefinition, len(defs))}
	for _, def := range defs {
		if def.ID == 0 {
			return nil, fmt.Errorf("card %q: id must be positive", def.Name)
		}
		if _, exists := c.cards[def.ID]; exists {
			return nil, fmt.Errorf("card %q: duplicate id %d", def.Name, def.ID)
		}
		effects := make(map[CardType]EffectSpec, len(def.Effects))
		for t, e := range def.Effects {
			effects[t] = e
		}
		d := def
		d.Effects = effects
		c.cards[def.ID] = &d
		c.ids = append(c.ids, def.ID)
	}
	sort.Slice(c.ids, func(i, j int) bool { return c.ids[i] < c.ids[j] })
	return c, nil
}

// DefaultCatalog returns the four starter cards.
func DefaultCatalog() *Catalog {
	uniform := func(e EffectSpec) map[CardType]EffectSpec {
		m := make(map[CardType]EffectSpec, len(CardTypes))
		for _, t := range CardTypes {
			m[t] = e
		}
		return m
	}

	wall := uniform(EffectSpec{Gain: 1, Bank: 1})
	wall[Red] = EffectSpec{Gain: 1, Bank: 1, Steal: 1}

	c, err := NewCatalog(
		CardDefinition{ID: CardFarmer, Name: "Farmer", Type: Green, Effects: uniform(EffectSpec{Gain: 3})},
		CardDefinition{ID: CardWall, Name: "Wall", Type: Blue, Effects: wall},
		CardDefinition{ID: CardRaider, Name: "Raider", Type: Red, Effects: map[CardType]EffectSpec{
			Green:  {Steal: 4},
			Blue:   {},
			Red:    {},
			Yellow: {Steal: 4},
		}},
		CardDefinition{ID: CardMerchant, Name: "Merchant", Type: Yellow, Effects: uniform(EffectSpec{BuyRelic: true, BuyCard: true})},
	)
	if err != nil {
		panic(err)
	}
	return c
}

// Get returns the definition for id, or nil.
func (c *Catalog) Get(id uint32) *CardDefinition {
	if c == nil {
		return nil
	}
	return c.cards[id]
}

// Has reports whether id is a known card.
func (c *Catalog) Has(id uint32) bool {
	return c.Get(id) != nil
}

// IDs returns every card id in ascending order.
func (c *Catalog) IDs() []uint32 {
	return append([]uint32(nil), c.ids...)
}

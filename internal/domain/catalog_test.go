package domain

import (
	"reflect"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	if !reflect.DeepEqual(c.IDs(), []uint32{1, 2, 3, 4}) {
		t.Fatalf("IDs() = %v", c.IDs())
	}

	tests := []struct {
		id       uint32
		name     string
		typ      CardType
		opponent CardType
		want     EffectSpec
	}{
		{id: CardFarmer, name: "Farmer", typ: Green, opponent: Blue, want: EffectSpec{Gain: 3}},
		{id: CardWall, name: "Wall", typ: Blue, opponent: Green, want: EffectSpec{Gain: 1, Bank: 1}},
		{id: CardWall, name: "Wall", typ: Blue, opponent: Red, want: EffectSpec{Gain: 1, Bank: 1, Steal: 1}},
		{id: CardRaider, name: "Raider", typ: Red, opponent: Yellow, want: EffectSpec{Steal: 4}},
		{id: CardRaider, name: "Raider", typ: Red, opponent: Blue, want: EffectSpec{}},
		{id: CardMerchant, name: "Merchant", typ: Yellow, opponent: Red, want: EffectSpec{BuyRelic: true, BuyCard: true}},
	}
	for _, tt := range tests {
		def := c.Get(tt.id)
		if def == nil {
			t.Fatalf("card %d missing", tt.id)
		}
		if def.Name != tt.name || def.Type != tt.typ {
			t.Fatalf("card %d = %s/%v, want %s/%v", tt.id, def.Name, def.Type, tt.name, tt.typ)
		}
		if got := def.EffectAgainst(tt.opponent); got != tt.want {
			t.Fatalf("%s vs %v = %+v, want %+v", tt.name, tt.opponent, got, tt.want)
		}
	}
}

func TestNewCatalogRejectsBadIDs(t *testing.T) {
	if _, err := NewCatalog(CardDefinition{ID: 0, Name: "zero"}); err == nil {
		t.Fatal("expected error for id 0")
	}
	if _, err := NewCatalog(CardDefinition{ID: 7, Name: "a"}, CardDefinition{ID: 7, Name: "b"}); err == nil {
		t.Fatal("expected error for duplicate id")
	}
}

func TestCatalogDefinitionsAreCopied(t *testing.T) {
	effects := map[CardType]EffectSpec{Green: {Gain: 1}}
	c, err := NewCatalog(CardDefinition{ID: 9, Name: "x", Effects: effects})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	effects[Green] = EffectSpec{Gain: 99}
	if got := c.Get(9).EffectAgainst(Green).Gain; got != 1 {
		t.Fatalf("catalog changed through caller map: gain = %d", got)
	}
}

package domain

import (
	"errors"
	"testing"
)

func starterHand(t *testing.T) Hand {
	t.Helper()
	hand, err := NewHand(DefaultCatalog(), []uint32{CardFarmer, CardWall, CardRaider, CardMerchant})
	if err != nil {
		t.Fatalf("NewHand: %v", err)
	}
	return hand
}

func TestSelectSwapBetweenSides(t *testing.T) {
	hand := starterHand(t)
	sel := NewSelection()

	if out, err := sel.Select(hand, SideLeft, 2); err != nil || out != SelectAssigned {
		t.Fatalf("select left 2 = %v, %v", out, err)
	}
	if out, err := sel.Select(hand, SideRight, 2); err != nil || out != SelectSwapped {
		t.Fatalf("select right 2 = %v, %v", out, err)
	}
	if sel.Left != NoCard || sel.Right != 2 {
		t.Fatalf("after swap = %+v, want left empty right 2", sel)
	}
	if _, err := sel.Select(hand, SideLeft, 1); err != nil {
		t.Fatalf("select left 1: %v", err)
	}
	if sel.Left != 1 || sel.Right != 2 {
		t.Fatalf("selection = %+v, want left 1 right 2", sel)
	}
	if !sel.IsComplete(hand) {
		t.Fatal("selection should be complete")
	}
}

func TestSelectSequences(t *testing.T) {
	type step struct {
		side  Side
		index int
		want  SelectOutcome
		err   error
	}
	tests := []struct {
		name      string
		exhausted []int
		steps     []step
		left      int
		right     int
	}{
		{
			name:  "toggle off",
			steps: []step{{SideLeft, 0, SelectAssigned, nil}, {SideLeft, 0, SelectToggledOff, nil}},
			left:  NoCard, right: NoCard,
		},
		{
			name:  "replace on same side",
			steps: []step{{SideRight, 0, SelectAssigned, nil}, {SideRight, 3, SelectAssigned, nil}},
			left:  NoCard, right: 3,
		},
		{
			name:  "swap right to left",
			steps: []step{{SideRight, 1, SelectAssigned, nil}, {SideLeft, 0, SelectAssigned, nil}, {SideLeft, 1, SelectSwapped, nil}},
			left:  1, right: NoCard,
		},
		{
			name:      "exhausted rejected",
			exhausted: []int{2},
			steps:     []step{{SideLeft, 2, SelectAssigned, ErrExhaustedCard}},
			left:      NoCard, right: NoCard,
		},
		{
			name:  "out of range rejected",
			steps: []step{{SideLeft, 1, SelectAssigned, nil}, {SideLeft, 9, SelectAssigned, ErrInvalidIndex}},
			left:  1, right: NoCard,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hand := starterHand(t)
			for _, i := range tt.exhausted {
				hand.Exhaust(i, 1)
			}
			sel := NewSelection()
			for n, s := range tt.steps {
				out, err := sel.Select(hand, s.side, s.index)
				if !errors.Is(err, s.err) {
					t.Fatalf("step %d: err = %v, want %v", n, err, s.err)
				}
				if err == nil && out != s.want {
					t.Fatalf("step %d: outcome = %v, want %v", n, out, s.want)
				}
				if sel.Left != NoCard && sel.Left == sel.Right {
					t.Fatalf("step %d: both sides hold %d", n, sel.Left)
				}
			}
			if sel.Left != tt.left || sel.Right != tt.right {
				t.Fatalf("selection = %+v, want left %d right %d", sel, tt.left, tt.right)
			}
		})
	}
}

func TestSelectionNeverDuplicates(t *testing.T) {
	hand := starterHand(t)
	sel := NewSelection()
	for i := 0; i < 200; i++ {
		side := Side(i % 2)
		idx := (i * 7) % len(hand)
		if _, err := sel.Select(hand, side, idx); err != nil {
			t.Fatalf("select: %v", err)
		}
		if sel.Left != NoCard && sel.Left == sel.Right {
			t.Fatalf("iteration %d: both sides hold %d", i, sel.Left)
		}
	}
}

func TestDeselectAndReturn(t *testing.T) {
	hand := starterHand(t)
	sel := NewSelection()
	_, _ = sel.Select(hand, SideLeft, 0)
	_, _ = sel.Select(hand, SideRight, 3)

	if sel.Deselect(SideLeft) != true || sel.Left != NoCard {
		t.Fatalf("deselect left failed: %+v", sel)
	}
	if sel.Deselect(SideLeft) {
		t.Fatal("deselecting an empty side should report false")
	}

	side, ok := sel.Return(3)
	if !ok || side != SideRight || sel.Right != NoCard {
		t.Fatalf("Return(3) = %v, %v; selection %+v", side, ok, sel)
	}
	if _, ok := sel.Return(1); ok {
		t.Fatal("returning an unassigned card should report false")
	}
	if _, ok := sel.Return(NoCard); ok {
		t.Fatal("returning NoCard should report false")
	}
}

func TestHighlights(t *testing.T) {
	hand := starterHand(t)
	sel := Selection{Left: 1, Right: 3}
	want := []Highlight{HighlightFree, HighlightLeft, HighlightFree, HighlightRight}
	got := Highlights(hand, sel)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("highlight[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

// FuzzSelection runs arbitrary select, deselect and return sequences over a
// hand with some cards exhausted. Each op byte packs the action in its low two
// bits and a hand index, possibly out of range, in the rest. Deselect takes its
// side from the lowest index bit.
func FuzzSelection(f *testing.F) {
	f.Add([]byte{0x00, 0x05, 0x09}, uint8(0))
	f.Add([]byte{0x08, 0x09, 0x0b, 0x08, 0x0e}, uint8(0b0100))
	f.Add([]byte{0x0c, 0x11, 0x13, 0x02, 0x00, 0x1c}, uint8(0b1001))
	f.Add([]byte{0x01, 0x00, 0x01, 0x00, 0x03, 0x17}, uint8(0b1111))

	f.Fuzz(func(t *testing.T, ops []byte, exhausted uint8) {
		hand := starterHand(t)
		for i := range hand {
			if exhausted&(1<<i) != 0 {
				hand.Exhaust(i, 1)
			}
		}
		sel := NewSelection()
		for n, op := range ops {
			index := int(op>>2)%8 - 2
			side := SideLeft
			if op&1 != 0 {
				side = SideRight
			}
			switch op & 3 {
			case 0, 1:
				before := sel
				out, err := sel.Select(hand, side, index)
				if wantErr := hand.CheckSelectable(index) != nil; (err != nil) != wantErr {
					t.Fatalf("op %d: Select(%s, %d) err = %v", n, side, index, err)
				}
				if err != nil {
					if sel != before {
						t.Fatalf("op %d: failed select changed %+v to %+v", n, before, sel)
					}
					continue
				}
				if want := out != SelectToggledOff; (sel.Slot(side) == index) != want {
					t.Fatalf("op %d: %s after Select(%s, %d) = %+v", n, out, side, index, sel)
				}
			case 2:
				if (op>>2)&1 != 0 {
					side = SideRight
				}
				had := sel.Slot(side) != NoCard
				if sel.Deselect(side) != had || sel.Slot(side) != NoCard {
					t.Fatalf("op %d: Deselect(%s) left %+v", n, side, sel)
				}
			case 3:
				held := index != NoCard && (sel.Left == index || sel.Right == index)
				if _, ok := sel.Return(index); ok != held || (index != NoCard && (sel.Left == index || sel.Right == index)) {
					t.Fatalf("op %d: Return(%d) = %v, selection %+v", n, index, ok, sel)
				}
			}

			if sel.Left != NoCard && sel.Left == sel.Right {
				t.Fatalf("op %d: both slots hold %d", n, sel.Left)
			}
			for _, slot := range []int{sel.Left, sel.Right} {
				if slot == NoCard {
					continue
				}
				if slot < 0 || slot >= len(hand) {
					t.Fatalf("op %d: slot %d out of range", n, slot)
				}
				if hand[slot].Exhausted {
					t.Fatalf("op %d: exhausted card %d selected", n, slot)
				}
			}
			highlights := Highlights(hand, sel)
			for i, h := range highlights {
				if want := (h == HighlightLeft) == (i == sel.Left); !want {
					t.Fatalf("op %d: highlight %d = %s with selection %+v", n, i, h, sel)
				}
			}
			if sel.IsComplete(hand) != (sel.Left != NoCard && sel.Right != NoCard) {
				t.Fatalf("op %d: IsComplete disagrees with %+v", n, sel)
			}
		}
	})
}

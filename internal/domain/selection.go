package domain

import "fmt"

// NoCard marks an empty selection slot.
const NoCard = -1

// Side identifies a selection slot, named after the neighbor the card is played toward.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	if s == SideLeft {
		return "left"
	}
	return "right"
}

func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Side) UnmarshalText(b []byte) error {
	switch string(b) {
	case "left":
		*s = SideLeft
	case "right":
		*s = SideRight
	default:
		return fmt.Errorf("unknown side %q", b)
	}
	return nil
}

// Other returns the opposite slot.
func (s Side) Other() Side {
	if s == SideLeft {
		return SideRight
	}
	return SideLeft
}

// Highlight is the render state of one hand card.
type Highlight int

const (
	HighlightFree Highlight = iota
	HighlightLeft
	HighlightRight
)

func (h Highlight) String() string {
	switch h {
	case HighlightLeft:
		return "left"
	case HighlightRight:
		return "right"
	default:
		return "free"
	}
}

func (h Highlight) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// SelectOutcome describes what a select call did.
type SelectOutcome int

const (
	SelectAssigned SelectOutcome = iota
	SelectToggledOff
	SelectSwapped
)

func (o SelectOutcome) String() string {
	switch o {
	case SelectToggledOff:
		return "toggled_off"
	case SelectSwapped:
		return "swapped"
	default:
		return "assigned"
	}
}

// Selection holds the hand indices assigned to each neighbor.
// Left and Right never hold the same index.
type Selection struct {
	Left  int `json:"left"`
	Right int `json:"right"`
}

// NewSelection returns an empty selection.
func NewSelection() Selection {
	return Selection{Left: NoCard, Right: NoCard}
}

// Slot returns the index held by side.
func (s *Selection) Slot(side Side) int {
	if side == SideLeft {
		return s.Left
	}
	return s.Right
}

func (s *Selection) set(side Side, index int) {
	if side == SideLeft {
		s.Left = index
	} else {
		s.Right = index
	}
}

// Select assigns hand[index] to side.
// Selecting the index already held by side clears it; selecting the index held by the
// other side moves it over and clears the other side.
func (s *Selection) Select(hand Hand, side Side, index int) (SelectOutcome, error) {
	if err := hand.CheckSelectable(index); err != nil {
		return SelectAssigned, err
	}
	switch index {
	case s.Slot(side):
		s.set(side, NoCard)
		return SelectToggledOff, nil
	case s.Slot(side.Other()):
		s.set(side, index)
		s.set(side.Other(), NoCard)
		return SelectSwapped, nil
	}
	s.set(side, index)
	return SelectAssigned, nil
}

// Deselect clears side. It reports whether anything was cleared.
func (s *Selection) Deselect(side Side) bool {
	if s.Slot(side) == NoCard {
		return false
	}
	s.set(side, NoCard)
	return true
}

// Return clears whichever slot holds index. It reports the cleared side.
func (s *Selection) Return(index int) (Side, bool) {
	switch index {
	case NoCard:
		return SideLeft, false
	case s.Left:
		s.Left = NoCard
		return SideLeft, true
	case s.Right:
		s.Right = NoCard
		return SideRight, true
	}
	return SideLeft, false
}

// IsComplete reports whether both slots hold valid indices of hand.
func (s *Selection) IsComplete(hand Hand) bool {
	valid := func(i int) bool { return i >= 0 && i < len(hand) }
	return valid(s.Left) && valid(s.Right)
}

// Highlights derives the render state of every hand card.
func Highlights(hand Hand, sel Selection) []Highlight {
	out := make([]Highlight, len(hand))
	for i := range hand {
		switch i {
		case sel.Left:
			out[i] = HighlightLeft
		case sel.Right:
			out[i] = HighlightRight
		default:
			out[i] = HighlightFree
		}
	}
	return out
}

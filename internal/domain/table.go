package domain

// SelectionSize is the number of cards each player plays per round.
const SelectionSize = 2

// Table is the view one client keeps of all three seats. Resources are replicated
// on every client; hands are tracked only for seats this client controls.
type Table struct {
	Bots      [SeatCount]bool
	Resources [SeatCount]PlayerResources
	Hands     map[int]Hand
}

// NewTable seats three players with the same starting resources.
func NewTable(start PlayerResources, bots [SeatCount]bool) *Table {
	t := &Table{Bots: bots, Hands: make(map[int]Hand)}
	for i := range t.Resources {
		t.Resources[i] = start
	}
	return t
}

// BotSeats returns the bot seats in ascending order.
func (t *Table) BotSeats() []int {
	var seats []int
	for i, isBot := range t.Bots {
		if isBot {
			seats = append(seats, i)
		}
	}
	return seats
}

// ApplyOutcome copies the resolved resources and exhausts the played cards of every
// tracked hand. Cards are matched by id; a card not in hand is ignored.
func (t *Table) ApplyOutcome(o RoundOutcome) {
	t.Resources = o.After
	for seat, hand := range t.Hands {
		used := make(map[int]bool, SelectionSize)
		for _, e := range o.Exhaustions {
			if e.Seat != seat {
				continue
			}
			idx := -1
			for i, c := range hand {
				if c.DefinitionID == e.CardID && !used[i] {
					idx = i
					break
				}
			}
			if idx < 0 {
				for i, c := range hand {
					if c.DefinitionID == e.CardID {
						idx = i
						break
					}
				}
			}
			if idx < 0 {
				continue
			}
			used[idx] = true
			hand.Exhaust(idx, e.RestoreAfter)
		}
	}
}

// Refresh restores due cards in every tracked hand and keeps at least
// SelectionSize cards selectable. It returns the restored indices per seat.
func (t *Table) Refresh(round uint32) map[int][]int {
	restored := make(map[int][]int)
	for seat, hand := range t.Hands {
		if idx := hand.Refresh(round, SelectionSize); len(idx) > 0 {
			restored[seat] = idx
		}
	}
	return restored
}

package app

import "github.com/Bokan96/VillagePillage/internal/domain"

// OfferStatus says what the aggregator did with a submission.
type OfferStatus int

const (
	OfferAccepted OfferStatus = iota
	OfferDuplicate
	OfferStale
	OfferBuffered
	OfferDropped
	OfferRepeated
	OfferInvalid
)

func (s OfferStatus) String() string {
	switch s {
	case OfferAccepted:
		return "accepted"
	case OfferDuplicate:
		return "duplicate"
	case OfferStale:
		return "stale"
	case OfferBuffered:
		return "buffered"
	case OfferRepeated:
		return "repeated"
	case OfferInvalid:
		return "invalid"
	default:
		return "dropped"
	}
}

// Err maps the status onto the recoverable error taxonomy. Accepted maps to nil.
func (s OfferStatus) Err() error {
	switch s {
	case OfferDuplicate, OfferRepeated:
		return domain.ErrDuplicateSubmission
	case OfferStale:
		return domain.ErrStaleSubmission
	case OfferBuffered:
		return domain.ErrOutOfOrderSubmission
	case OfferDropped:
		return domain.ErrSubmissionTooFarAhead
	case OfferInvalid:
		return domain.ErrInvalidSeat
	default:
		return nil
	}
}

// Aggregator folds submissions into per-round sets keyed by seat.
// The fold is commutative: arrival order never changes the resulting set, and the
// first submission for a (round, seat) wins.
type Aggregator struct {
	current uint32
	rounds  map[uint32]*[domain.SeatCount]*domain.RoundSubmission
}

func NewAggregator() *Aggregator {
	return &Aggregator{rounds: make(map[uint32]*[domain.SeatCount]*domain.RoundSubmission)}
}

// Offer records s. Submissions for earlier rounds are stale; submissions for later
// rounds are held until Advance reaches them. A second copy of a recorded
// submission is repeated, a different one for the same seat is a duplicate.
func (a *Aggregator) Offer(s domain.RoundSubmission) OfferStatus {
	if !domain.ValidSeat(int(s.Seat)) {
		return OfferInvalid
	}
	switch {
	case s.Round < a.current || s.Round == 0:
		return OfferStale
	case s.Round > a.current+MaxBufferedRounds:
		return OfferDropped
	}
	set := a.rounds[s.Round]
	if set == nil {
		set = new([domain.SeatCount]*domain.RoundSubmission)
		a.rounds[s.Round] = set
	}
	if prev := set[s.Seat]; prev != nil {
		if *prev == s {
			return OfferRepeated
		}
		return OfferDuplicate
	}
	sub := s
	set[s.Seat] = &sub
	if s.Round > a.current {
		return OfferBuffered
	}
	return OfferAccepted
}

// Has reports whether seat has submitted for the current round.
func (a *Aggregator) Has(seat int) bool {
	set := a.rounds[a.current]
	return set != nil && domain.ValidSeat(seat) && set[seat] != nil
}

// Count returns how many seats have submitted for the current round.
func (a *Aggregator) Count() int {
	n := 0
	if set := a.rounds[a.current]; set != nil {
		for _, s := range set {
			if s != nil {
				n++
			}
		}
	}
	return n
}

// Complete reports whether all seats have submitted for the current round.
func (a *Aggregator) Complete() bool {
	return a.Count() == domain.SeatCount
}

// Held returns the submissions recorded so far for round in seat order.
func (a *Aggregator) Held(round uint32) []domain.RoundSubmission {
	var out []domain.RoundSubmission
	if set := a.rounds[round]; set != nil {
		for _, s := range set {
			if s != nil {
				out = append(out, *s)
			}
		}
	}
	return out
}

// Plays returns the current round's submissions in seat order once complete.
func (a *Aggregator) Plays() ([domain.SeatCount]domain.RoundSubmission, bool) {
	var plays [domain.SeatCount]domain.RoundSubmission
	if !a.Complete() {
		return plays, false
	}
	for i, s := range a.rounds[a.current] {
		plays[i] = *s
	}
	return plays, true
}

// Advance moves collection to round and forgets everything older.
// Buffered submissions for round become current. It returns how many there were.
func (a *Aggregator) Advance(round uint32) int {
	if round < a.current {
		return 0
	}
	a.current = round
	for r := range a.rounds {
		if r < round {
			delete(a.rounds, r)
		}
	}
	return a.Count()
}

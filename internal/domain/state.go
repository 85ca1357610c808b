package domain

import "fmt"

// SeatCount is the fixed number of players at a table.
const SeatCount = 3

// Phase represents the stage of the current round.
type Phase string

const (
	// PhaseWaiting is the idle state before the first round and after the game ends.
	PhaseWaiting Phase = "waiting"
	// PhasePlanning is the timed window where players pick cards for both neighbors.
	PhasePlanning Phase = "planning"
	// PhaseRevealing shows the three pairs of played cards before effects apply.
	PhaseRevealing Phase = "revealing"
	// PhaseResolving applies card effects.
	PhaseResolving Phase = "resolving"
	// PhaseRefresh restores cards before the next round.
	PhaseRefresh Phase = "refresh"
)

// PlayerResources is the economy of one seat.
type PlayerResources struct {
	Turnips   int `json:"turnips"`
	Bank      int `json:"bank"`
	BankLimit int `json:"bank_limit"`
	Relics    int `json:"relics"`
}

// AddBank moves the bank by delta, clamped to [0, BankLimit].
func (r *PlayerResources) AddBank(delta int) {
	r.Bank = clamp(r.Bank+delta, 0, r.BankLimit)
}

// Take removes up to n turnips and returns how many were removed.
func (r *PlayerResources) Take(n int) int {
	if n <= 0 {
		return 0
	}
	if n > r.Turnips {
		n = r.Turnips
	}
	r.Turnips -= n
	return n
}

// Spend pays cost from turnips first and then from the bank.
// It reports false and changes nothing when the player cannot afford it.
func (r *PlayerResources) Spend(cost int) bool {
	if cost < 0 || r.Turnips+r.Bank < cost {
		return false
	}
	fromTurnips := min(cost, r.Turnips)
	r.Turnips -= fromTurnips
	r.Bank -= cost - fromTurnips
	return true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// RoundSubmission is one player's finalized pair of cards for a round.
type RoundSubmission struct {
	Round       uint32 `json:"round"`
	Seat        uint8  `json:"player_id"`
	LeftCardID  uint32 `json:"left_card_id"`
	RightCardID uint32 `json:"right_card_id"`
}

func (s RoundSubmission) String() string {
	return fmt.Sprintf("round=%d seat=%d left=%d right=%d", s.Round, s.Seat, s.LeftCardID, s.RightCardID)
}

// CardToward returns the card this submission plays toward the given side.
func (s RoundSubmission) CardToward(side Side) uint32 {
	if side == SideLeft {
		return s.LeftCardID
	}
	return s.RightCardID
}

// Validate checks the seat and that both cards exist in the catalog.
func (s RoundSubmission) Validate(catalog *Catalog) error {
	if int(s.Seat) >= SeatCount {
		return ErrInvalidSeat
	}
	if !catalog.Has(s.LeftCardID) || !catalog.Has(s.RightCardID) {
		return ErrUnknownCard
	}
	return nil
}

// StartSignal tells every peer to leave Waiting and begin Round with the given bot seats.
type StartSignal struct {
	Round     uint32 `json:"round"`
	BotMask   uint32 `json:"bot_mask"`
	StartedBy uint8  `json:"started_by"`
}

// Bots expands the bot mask.
func (s StartSignal) Bots() [SeatCount]bool {
	return BotsFromMask(s.BotMask)
}

package app

import "github.com/Bokan96/VillagePillage/internal/domain"

// EventKind identifies events emitted by the engine.
type EventKind string

const (
	EventGameStarted        EventKind = "game_started"
	EventPhaseChanged       EventKind = "phase_changed"
	EventHighlightChanged   EventKind = "highlight_changed"
	EventCountdownTick      EventKind = "countdown_tick"
	EventSubmit             EventKind = "submit"
	EventSubmissionAccepted EventKind = "submission_accepted"
	EventRevealed           EventKind = "revealed"
	EventRoundResolved      EventKind = "round_resolved"
	EventHandRefreshed      EventKind = "hand_refreshed"
	EventGameEnded          EventKind = "game_ended"
)

// Event is something the rest of the process must react to.
// EventSubmit is the only outbound one: its payload must be broadcast to the room.
type Event struct {
	Kind    EventKind
	Round   uint32
	Payload any
}

type GameStartedPayload struct {
	Bots      [domain.SeatCount]bool
	Authority int
	Resources [domain.SeatCount]domain.PlayerResources
}

type PhaseChangedPayload struct {
	Phase            domain.Phase
	RemainingSeconds int
}

type HighlightChangedPayload struct {
	Index int
	State domain.Highlight
}

type CountdownTickPayload struct {
	RemainingSeconds int
}

type SubmitPayload struct {
	Submission domain.RoundSubmission
	// Forced is set when the countdown filled the selection.
	Forced bool
	// Bot is set for submissions made on behalf of a bot seat.
	Bot bool
	// Resend is set when a submission already broadcast goes out again
	// for a peer that has not received it.
	Resend bool
}

type SubmissionAcceptedPayload struct {
	Seat  int
	Count int
}

type RevealedPayload struct {
	Plays [domain.SeatCount]domain.RoundSubmission
}

type RoundResolvedPayload struct {
	Outcome domain.RoundOutcome
}

type HandRefreshedPayload struct {
	Hand     domain.Hand
	Restored []int
}

type GameEndedPayload struct {
	Winners   []int
	Resources [domain.SeatCount]domain.PlayerResources
}

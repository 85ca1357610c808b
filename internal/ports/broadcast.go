package ports

import (
	"context"

	"github.com/Bokan96/VillagePillage/internal/domain"
)

// Broadcaster delivers game messages to every participant of a room, the sender included.
// Delivery is at-least-once and FIFO per sender; there is no ordering across senders.
type Broadcaster interface {
	// PublishSubmission sends a finalized pair of cards.
	PublishSubmission(ctx context.Context, s domain.RoundSubmission) error

	// PublishStart sends the start-round signal.
	PublishStart(ctx context.Context, s domain.StartSignal) error

	// Subscribe opens a feed of everything published to the room from now on.
	Subscribe(ctx context.Context) (Subscription, error)
}

// Subscription is an open feed of room messages. Channels are closed by Close.
type Subscription interface {
	Submissions() <-chan domain.RoundSubmission
	Starts() <-chan domain.StartSignal
	Close() error
}

// Package natsbus broadcasts room messages between peer clients over NATS.
// Each room uses two subjects; messages are protobuf-encoded.
package natsbus

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/heroiclabs/nakama-common/runtime"
	"github.com/nats-io/nats.go"

	"github.com/Bokan96/VillagePillage/internal/domain"
	"github.com/Bokan96/VillagePillage/internal/ports"
	"github.com/Bokan96/VillagePillage/internal/wire"
)

const subjectPrefix = "village.room."

// SubmissionSubject is the subject carrying round submissions for room.
func SubmissionSubject(room string) string {
	return subjectPrefix + room + ".submission"
}

// StartSubject is the subject carrying start signals for room.
func StartSubject(room string) string {
	return subjectPrefix + room + ".start"
}

// ValidRoom reports whether room can be used as a subject token.
func ValidRoom(room string) bool {
	return room != "" && !strings.ContainsAny(room, ". *>\t\r\n")
}

// BrokerConnect dials the NATS server with reconnects enabled.
func BrokerConnect(url, clientName string, logger runtime.Logger) (*nats.Conn, error) {
	if clientName == "" {
		clientName = "village-" + uuid.NewString()
	}
	nc, err := nats.Connect(url,
		nats.Name(clientName),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected: %v", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("nats reconnected to %s", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", url, err)
	}
	return nc, nil
}

// Bus is a Broadcaster for one room. Publishers receive their own messages
// because NATS echoes to local subscriptions by default.
type Bus struct {
	nc     *nats.Conn
	room   string
	logger runtime.Logger
}

var _ ports.Broadcaster = (*Bus)(nil)

func New(nc *nats.Conn, room string, logger runtime.Logger) (*Bus, error) {
	if !ValidRoom(room) {
		return nil, fmt.Errorf("invalid room name %q", room)
	}
	return &Bus{nc: nc, room: room, logger: logger.WithField("room", room)}, nil
}

func (b *Bus) PublishSubmission(ctx context.Context, s domain.RoundSubmission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := b.nc.Publish(SubmissionSubject(b.room), wire.MarshalSubmission(s)); err != nil {
		return fmt.Errorf("publish submission: %w", err)
	}
	return nil
}

func (b *Bus) PublishStart(ctx context.Context, s domain.StartSignal) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := b.nc.Publish(StartSubject(b.room), wire.MarshalStart(s)); err != nil {
		return fmt.Errorf("publish start: %w", err)
	}
	return nil
}

func (b *Bus) Subscribe(ctx context.Context) (ports.Subscription, error) {
	var (
		mu      sync.Mutex
		subs    []*nats.Subscription
		stopped bool
	)
	track := func(s *nats.Subscription) {
		mu.Lock()
		defer mu.Unlock()
		if stopped {
			_ = s.Unsubscribe()
			return
		}
		subs = append(subs, s)
	}
	feed := ports.NewFeed(ctx, func() {
		mu.Lock()
		defer mu.Unlock()
		stopped = true
		for _, s := range subs {
			if err := s.Unsubscribe(); err != nil && !errors.Is(err, nats.ErrConnectionClosed) {
				b.logger.Warn("unsubscribe %s: %v", s.Subject, err)
			}
		}
	})

	subSub, err := b.nc.Subscribe(SubmissionSubject(b.room), func(m *nats.Msg) {
		s, err := wire.UnmarshalSubmission(m.Data)
		if err != nil {
			b.logger.Warn("dropping malformed submission: %v", err)
			return
		}
		feed.PushSubmission(s)
	})
	if err != nil {
		feed.Close()
		return nil, fmt.Errorf("subscribe submissions: %w", err)
	}
	track(subSub)

	startSub, err := b.nc.Subscribe(StartSubject(b.room), func(m *nats.Msg) {
		s, err := wire.UnmarshalStart(m.Data)
		if err != nil {
			b.logger.Warn("dropping malformed start signal: %v", err)
			return
		}
		feed.PushStart(s)
	})
	if err != nil {
		feed.Close()
		return nil, fmt.Errorf("subscribe starts: %w", err)
	}
	track(startSub)

	if err := b.nc.Flush(); err != nil {
		feed.Close()
		return nil, fmt.Errorf("flush subscriptions: %w", err)
	}
	return feed, nil
}

// Package localbus is an in-process Broadcaster. Every subscriber, the
// publisher's own included, sees every message in publish order.
package localbus

import (
	"context"
	"errors"
	"sync"

	"github.com/Bokan96/VillagePillage/internal/domain"
	"github.com/Bokan96/VillagePillage/internal/ports"
)

var ErrClosed = errors.New("bus closed")

type Bus struct {
	mu     sync.Mutex
	subs   map[*ports.Feed]struct{}
	closed bool
}

var _ ports.Broadcaster = (*Bus)(nil)

func New() *Bus {
	return &Bus{subs: make(map[*ports.Feed]struct{})}
}

func (b *Bus) PublishSubmission(ctx context.Context, s domain.RoundSubmission) error {
	return b.each(ctx, func(f *ports.Feed) { f.PushSubmission(s) })
}

func (b *Bus) PublishStart(ctx context.Context, s domain.StartSignal) error {
	return b.each(ctx, func(f *ports.Feed) { f.PushStart(s) })
}

func (b *Bus) each(ctx context.Context, fn func(*ports.Feed)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}
	for f := range b.subs {
		fn(f)
	}
	return nil
}

func (b *Bus) Subscribe(ctx context.Context) (ports.Subscription, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, ErrClosed
	}
	var f *ports.Feed
	f = ports.NewFeed(ctx, func() {
		b.mu.Lock()
		delete(b.subs, f)
		b.mu.Unlock()
	})
	b.subs[f] = struct{}{}
	return f, nil
}

// Close stops every subscription. Later publishes fail with ErrClosed.
func (b *Bus) Close() {
	b.mu.Lock()
	b.closed = true
	feeds := make([]*ports.Feed, 0, len(b.subs))
	for f := range b.subs {
		feeds = append(feeds, f)
	}
	b.mu.Unlock()
	for _, f := range feeds {
		f.Close()
	}
}

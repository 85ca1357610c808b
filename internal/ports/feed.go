package ports

import (
	"context"
	"sync"

	"github.com/Bokan96/VillagePillage/internal/domain"
)

type feedItem struct {
	submission *domain.RoundSubmission
	start      *domain.StartSignal
}

// Feed is a Subscription backed by an unbounded in-memory queue. Pushes never
// block, and items come out in push order across both channels.
type Feed struct {
	mu     sync.Mutex
	queue  []feedItem
	wake   chan struct{}
	done   chan struct{}
	closed sync.Once
	onStop func()

	submissions chan domain.RoundSubmission
	starts      chan domain.StartSignal
}

// NewFeed starts a feed that stops when ctx ends or Close is called.
// onStop, if set, runs once when the feed stops.
func NewFeed(ctx context.Context, onStop func()) *Feed {
	f := &Feed{
		wake:        make(chan struct{}, 1),
		done:        make(chan struct{}),
		onStop:      onStop,
		submissions: make(chan domain.RoundSubmission),
		starts:      make(chan domain.StartSignal),
	}
	go f.pump(ctx)
	return f
}

func (f *Feed) Submissions() <-chan domain.RoundSubmission { return f.submissions }
func (f *Feed) Starts() <-chan domain.StartSignal          { return f.starts }

// PushSubmission queues s for delivery.
func (f *Feed) PushSubmission(s domain.RoundSubmission) {
	f.push(feedItem{submission: &s})
}

// PushStart queues s for delivery.
func (f *Feed) PushStart(s domain.StartSignal) {
	f.push(feedItem{start: &s})
}

func (f *Feed) push(it feedItem) {
	select {
	case <-f.done:
		return
	default:
	}
	f.mu.Lock()
	f.queue = append(f.queue, it)
	f.mu.Unlock()
	select {
	case f.wake <- struct{}{}:
	default:
	}
}

// Close stops the feed. It is safe to call more than once.
func (f *Feed) Close() error {
	f.closed.Do(func() {
		close(f.done)
		if f.onStop != nil {
			f.onStop()
		}
	})
	return nil
}

func (f *Feed) next() (feedItem, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.queue) == 0 {
		return feedItem{}, false
	}
	it := f.queue[0]
	f.queue[0] = feedItem{}
	f.queue = f.queue[1:]
	return it, true
}

func (f *Feed) pump(ctx context.Context) {
	defer close(f.submissions)
	defer close(f.starts)
	for {
		it, ok := f.next()
		if !ok {
			select {
			case <-f.wake:
				continue
			case <-f.done:
				return
			case <-ctx.Done():
				f.Close()
				return
			}
		}
		var subs chan domain.RoundSubmission
		var starts chan domain.StartSignal
		var sub domain.RoundSubmission
		var start domain.StartSignal
		if it.submission != nil {
			subs, sub = f.submissions, *it.submission
		} else {
			starts, start = f.starts, *it.start
		}
		select {
		case subs <- sub:
		case starts <- start:
		case <-f.done:
			return
		case <-ctx.Done():
			f.Close()
			return
		}
	}
}

package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/heroiclabs/nakama-common/runtime"

	"github.com/Bokan96/VillagePillage/internal/domain"
	"github.com/Bokan96/VillagePillage/internal/ports"
)

var ErrSubscriptionClosed = errors.New("room subscription closed")

// persistQueueSize bounds the outcomes waiting to be written to history.
const persistQueueSize = 32

// EventSink receives every engine event, in order, on the runner's goroutine.
type EventSink interface {
	Handle(ev Event)
}

// Command runs against the engine on the runner's goroutine.
type Command func(e *Engine) []Event

// RunnerConfig wires a Runner. History and Market are optional.
type RunnerConfig struct {
	Engine  *Engine
	Bus     ports.Broadcaster
	Sink    EventSink
	History ports.HistoryPort
	Market  ports.MarketPort
	Room    string
	Tick    time.Duration
	Logger  runtime.Logger
}

// Runner owns the engine and serializes everything that touches it: countdown
// ticks, received messages, local input and snapshot requests all run to
// completion one at a time on a single goroutine.
type Runner struct {
	engine    *Engine
	bus       ports.Broadcaster
	sink      EventSink
	history   ports.HistoryPort
	market    ports.MarketPort
	room      string
	tick      time.Duration
	logger    runtime.Logger
	commands  chan Command
	snapshots chan chan Snapshot
	persist   chan domain.RoundOutcome
}

func NewRunner(cfg RunnerConfig) *Runner {
	if cfg.Tick <= 0 {
		cfg.Tick = 100 * time.Millisecond
	}
	return &Runner{
		engine:    cfg.Engine,
		bus:       cfg.Bus,
		sink:      cfg.Sink,
		history:   cfg.History,
		market:    cfg.Market,
		room:      cfg.Room,
		tick:      cfg.Tick,
		logger:    cfg.Logger.WithField("room", cfg.Room),
		commands:  make(chan Command),
		snapshots: make(chan chan Snapshot),
		persist:   make(chan domain.RoundOutcome, persistQueueSize),
	}
}

// Do queues cmd for the runner's goroutine.
func (r *Runner) Do(ctx context.Context, cmd Command) error {
	select {
	case r.commands <- cmd:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot returns a copy of the engine state taken on the runner's goroutine.
func (r *Runner) Snapshot(ctx context.Context) (Snapshot, error) {
	reply := make(chan Snapshot, 1)
	select {
	case r.snapshots <- reply:
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
	select {
	case s := <-reply:
		return s, nil
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
}

// RequestStart broadcasts a start signal for a new game. The engine itself starts
// when the signal comes back through the subscription, like everyone else's.
func (r *Runner) RequestStart(ctx context.Context, bots [domain.SeatCount]bool) error {
	type result struct {
		signal domain.StartSignal
		err    error
	}
	reply := make(chan result, 1)
	err := r.Do(ctx, func(e *Engine) []Event {
		sig, err := e.NextStart(bots)
		reply <- result{sig, err}
		return nil
	})
	if err != nil {
		return err
	}
	var res result
	select {
	case res = <-reply:
	case <-ctx.Done():
		return ctx.Err()
	}
	if res.err != nil {
		return res.err
	}
	if err := r.bus.PublishStart(ctx, res.signal); err != nil {
		return fmt.Errorf("publish start: %w", err)
	}
	return nil
}

// Run processes events until ctx is cancelled or the subscription closes.
// It must be called at most once.
func (r *Runner) Run(ctx context.Context) error {
	sub, err := r.bus.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	defer func() {
		if err := sub.Close(); err != nil {
			r.logger.Warn("closing subscription: %v", err)
		}
	}()

	var wg sync.WaitGroup
	if r.history != nil || r.market != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.persistLoop(ctx)
		}()
	}
	defer func() {
		close(r.persist)
		wg.Wait()
	}()

	ticker := time.NewTicker(r.tick)
	defer ticker.Stop()
	last := time.Now()

	r.logger.Info("runner started for seat %d", r.engine.Seat())
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("runner stopping: %v", ctx.Err())
			return nil
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			r.dispatch(ctx, r.engine.Tick(dt))
		case s, ok := <-sub.Submissions():
			if !ok {
				return ErrSubscriptionClosed
			}
			r.dispatch(ctx, r.engine.Deliver(s))
		case sig, ok := <-sub.Starts():
			if !ok {
				return ErrSubscriptionClosed
			}
			evs, err := r.engine.Start(sig)
			if err != nil {
				r.logger.Warn("ignoring start signal for round %d from seat %d: %v", sig.Round, sig.StartedBy, err)
				continue
			}
			r.dispatch(ctx, evs)
		case cmd := <-r.commands:
			r.dispatch(ctx, cmd(r.engine))
		case reply := <-r.snapshots:
			reply <- r.engine.Snapshot()
		}
	}
}

func (r *Runner) dispatch(ctx context.Context, evs []Event) {
	for _, ev := range evs {
		if r.sink != nil {
			r.sink.Handle(ev)
		}
		switch p := ev.Payload.(type) {
		case SubmitPayload:
			if err := r.bus.PublishSubmission(ctx, p.Submission); err != nil {
				r.logger.Error("publish %s: %v", p.Submission, err)
			}
		case RoundResolvedPayload:
			if r.history == nil && r.market == nil {
				continue
			}
			select {
			case r.persist <- p.Outcome:
			default:
				r.logger.Warn("history queue full, dropping round %d", p.Outcome.Round)
			}
		}
	}
}

// persistLoop writes resolved rounds off the runner's goroutine.
func (r *Runner) persistLoop(ctx context.Context) {
	for outcome := range r.persist {
		// A cancelled runner still flushes the queue.
		wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		if r.history != nil {
			if err := r.history.AppendRound(wctx, r.room, outcome); err != nil {
				r.logger.Error("history: round %d: %v", outcome.Round, err)
			}
		}
		if r.market != nil {
			for _, g := range outcome.Grants {
				if err := r.market.GrantPurchase(wctx, r.room, outcome.Round, g); err != nil {
					r.logger.Error("market: round %d seat %d %s: %v", outcome.Round, g.Seat, g.Kind, err)
				}
			}
		}
		cancel()
	}
}

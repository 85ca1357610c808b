package localbus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Bokan96/VillagePillage/internal/domain"
	"github.com/Bokan96/VillagePillage/internal/ports"
)

func recv(t *testing.T, sub ports.Subscription) domain.RoundSubmission {
	t.Helper()
	select {
	case s := <-sub.Submissions():
		return s
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for submission")
	}
	return domain.RoundSubmission{}
}

func TestBusFansOutInOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := New()
	a, err := bus.Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	b, _ := bus.Subscribe(ctx)

	for i := uint32(1); i <= 50; i++ {
		if err := bus.PublishSubmission(ctx, domain.RoundSubmission{Round: i, Seat: 1, LeftCardID: 1, RightCardID: 2}); err != nil {
			t.Fatalf("publish: %v", err)
		}
	}
	for _, sub := range []ports.Subscription{a, b} {
		for i := uint32(1); i <= 50; i++ {
			if got := recv(t, sub); got.Round != i {
				t.Fatalf("got round %d, want %d", got.Round, i)
			}
		}
	}
}

func TestBusStartSignal(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := New()
	sub, _ := bus.Subscribe(ctx)
	want := domain.StartSignal{Round: 1, BotMask: 6}
	if err := bus.PublishStart(ctx, want); err != nil {
		t.Fatalf("PublishStart: %v", err)
	}
	select {
	case got := <-sub.Starts():
		if got != want {
			t.Fatalf("start = %+v, want %+v", got, want)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for start")
	}
}

func TestSubscriptionCloseIsIdempotent(t *testing.T) {
	bus := New()
	sub, _ := bus.Subscribe(context.Background())
	if err := sub.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := sub.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	select {
	case _, ok := <-sub.Submissions():
		if ok {
			t.Fatal("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Fatal("channel not closed")
	}
	// Publishing to a bus with no subscribers still succeeds.
	if err := bus.PublishSubmission(context.Background(), domain.RoundSubmission{Round: 1}); err != nil {
		t.Fatalf("publish: %v", err)
	}
}

func TestClosedBus(t *testing.T) {
	bus := New()
	bus.Close()
	if _, err := bus.Subscribe(context.Background()); !errors.Is(err, ErrClosed) {
		t.Fatalf("Subscribe err = %v", err)
	}
	if err := bus.PublishStart(context.Background(), domain.StartSignal{}); !errors.Is(err, ErrClosed) {
		t.Fatalf("PublishStart err = %v", err)
	}
}

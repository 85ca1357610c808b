package app

import (
	"testing"
	"time"
)

func TestCountdownExpiresOnce(t *testing.T) {
	c := NewCountdown(3 * time.Second)
	c.Start()
	if c.Seconds() != 3 {
		t.Fatalf("Seconds() = %d", c.Seconds())
	}
	if c.Tick(1500 * time.Millisecond) {
		t.Fatal("expired early")
	}
	if c.Seconds() != 2 {
		t.Fatalf("Seconds() = %d, want 2 (rounded up)", c.Seconds())
	}
	if !c.Tick(2 * time.Second) {
		t.Fatal("should expire")
	}
	if c.Remaining() != 0 || c.Running() {
		t.Fatalf("after expiry remaining=%v running=%v", c.Remaining(), c.Running())
	}
	if c.Tick(time.Second) {
		t.Fatal("expired twice")
	}
}

func TestCountdownStopIsIdempotent(t *testing.T) {
	c := NewCountdown(time.Second)
	c.Start()
	c.Stop()
	c.Stop()
	if c.Tick(5 * time.Second) {
		t.Fatal("stopped countdown must not expire")
	}
	if c.Remaining() != time.Second {
		t.Fatalf("remaining = %v", c.Remaining())
	}
}

func TestCountdownStartWhileRunning(t *testing.T) {
	c := NewCountdown(10 * time.Second)
	c.Start()
	c.Tick(4 * time.Second)
	c.Start()
	if c.Remaining() != 6*time.Second {
		t.Fatalf("Start on a running countdown rewound it: %v", c.Remaining())
	}
	c.Stop()
	c.Start()
	if c.Remaining() != 10*time.Second {
		t.Fatalf("restart = %v", c.Remaining())
	}
}

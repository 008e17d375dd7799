package app

import (
	"testing"
	"time"

	"github.com/dkeye/Strangers/internal/core"
)

// an hour: long enough that the timer never fires during a test run.
const never = time.Hour

func noFire(t *testing.T) func(a, b core.ClientID) {
	return func(a, b core.ClientID) {
		t.Errorf("timer fired unexpectedly for (%s, %s)", a, b)
	}
}

func TestScheduleCoversBothHandles(t *testing.T) {
	m := NewEscalationManager()
	m.Schedule("a", "b", never, noFire(t))

	if !m.Active("a") || !m.Active("b") {
		t.Fatalf("timer must cover both handles")
	}
}

func TestCancelFromEitherSide(t *testing.T) {
	m := NewEscalationManager()
	m.Schedule("a", "b", never, noFire(t))
	m.Cancel("b")

	if m.Active("a") || m.Active("b") {
		t.Fatalf("cancel from one side must remove the timer for both")
	}
	m.Cancel("b") // idempotent
}

func TestFireClaimsBookkeepingOnce(t *testing.T) {
	m := NewEscalationManager()
	m.Schedule("a", "b", never, noFire(t))

	if !m.Fire("a", "b") {
		t.Fatalf("first fire must claim the entry")
	}
	if m.Fire("a", "b") {
		t.Fatalf("second fire must find nothing to claim")
	}
	if m.Active("a") || m.Active("b") {
		t.Fatalf("fired timer left bookkeeping behind")
	}
}

func TestFireRejectsRecycledPair(t *testing.T) {
	m := NewEscalationManager()
	m.Schedule("a", "b", never, noFire(t))
	m.Cancel("a")
	// a got re-paired with c before the old callback could run.
	m.Schedule("a", "c", never, noFire(t))

	if m.Fire("a", "b") {
		t.Fatalf("stale (a, b) fire must not claim the (a, c) timer")
	}
	if !m.Active("a") || !m.Active("c") {
		t.Fatalf("current (a, c) timer must survive the stale fire")
	}
}

func TestRescheduleReplacesLeftoverTimer(t *testing.T) {
	m := NewEscalationManager()
	m.Schedule("a", "b", never, noFire(t))
	m.Schedule("a", "c", never, noFire(t))

	if m.Active("b") {
		t.Fatalf("old partner must lose its timer on reschedule")
	}
	if !m.Fire("a", "c") {
		t.Fatalf("replacement timer missing")
	}
}

func TestTimerCallbackFires(t *testing.T) {
	m := NewEscalationManager()
	fired := make(chan struct{})
	m.Schedule("a", "b", 5*time.Millisecond, func(a, b core.ClientID) {
		close(fired)
	})

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatalf("timer callback never ran")
	}
}

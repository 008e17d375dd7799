package app

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Strangers/internal/core"
)

// escalation is one pending voice->video upgrade. Both members of the
// pair reference the same record, so cancelling from either side
// removes it for both.
type escalation struct {
	a, b     core.ClientID
	timer    *time.Timer
	deadline time.Time
}

// EscalationManager schedules the delayed mode upgrade for voice pairs.
// It only keeps bookkeeping; deciding whether a fired timer still
// applies is the coordinator's job (see Fire).
//
// Schedule and Cancel are serialized by the orchestrator. The AfterFunc
// callback runs on its own goroutine and must re-enter through the
// orchestrator, which calls Fire under the same serialization.
type EscalationManager struct {
	timers map[core.ClientID]*escalation
}

func NewEscalationManager() *EscalationManager {
	return &EscalationManager{timers: make(map[core.ClientID]*escalation)}
}

// Schedule arms a one-shot timer for the pair (a, b). At most one
// timer may exist per pair; a leftover entry for either handle is
// cancelled first.
func (m *EscalationManager) Schedule(a, b core.ClientID, delay time.Duration, fire func(a, b core.ClientID)) {
	m.Cancel(a)
	m.Cancel(b)
	e := &escalation{a: a, b: b, deadline: time.Now().Add(delay)}
	e.timer = time.AfterFunc(delay, func() { fire(a, b) })
	m.timers[a] = e
	m.timers[b] = e
	log.Debug().Str("module", "app.escalation").
		Str("cid_a", string(a)).Str("cid_b", string(b)).
		Dur("delay", delay).Msg("escalation scheduled")
}

// Cancel stops and removes the timer covering id, for both members of
// its pair. No-op if none exists.
func (m *EscalationManager) Cancel(id core.ClientID) {
	e, ok := m.timers[id]
	if !ok {
		return
	}
	e.timer.Stop()
	delete(m.timers, e.a)
	delete(m.timers, e.b)
}

// Fire claims the bookkeeping for an elapsed timer. It reports whether
// an entry for exactly this pair was still armed, and removes it if so.
// A cancel that ran before the callback reached the coordinator leaves
// nothing to claim, so a raced fire is a no-op. A false result also
// covers handles that were recycled into new pairs in the meantime.
func (m *EscalationManager) Fire(a, b core.ClientID) bool {
	e, ok := m.timers[a]
	if !ok {
		return false
	}
	if !(e.a == a && e.b == b) && !(e.a == b && e.b == a) {
		return false
	}
	delete(m.timers, e.a)
	delete(m.timers, e.b)
	return true
}

// Active reports whether a timer currently covers id.
func (m *EscalationManager) Active(id core.ClientID) bool {
	_, ok := m.timers[id]
	return ok
}

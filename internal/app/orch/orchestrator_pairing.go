package orch

import (
	"math/rand"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Strangers/internal/core"
	"github.com/dkeye/Strangers/internal/domain"
)

// handleConnect processes a CONNECT request: leave any current pair,
// record the requested mode, then match or wait. Caller holds mu.
func (o *Orchestrator) handleConnect(id core.ClientID, mode domain.Mode) {
	if partner, ok := o.Pairs.Unlink(id); ok {
		o.Escalations.Cancel(id)
		o.send(partner, core.NewDisconnected("your partner left"))
		// The old partner goes back into matching under its own
		// recorded mode, never a default.
		o.requeue(partner)
	}
	o.Queue.Remove(id)
	o.Registry.SetMode(id, mode)

	if match, ok := o.Queue.TryMatch(mode, o.eligible); ok {
		o.link(id, match, mode)
		return
	}
	o.Queue.Enqueue(id, mode)
	o.Registry.SetState(id, domain.StateWaiting)
	o.send(id, core.NewStatus("searching..."))
}

// handleDisconnect ends the pairing deliberately. The partner is told,
// but not requeued: an explicit leave is a pause, not a drop.
func (o *Orchestrator) handleDisconnect(id core.ClientID) {
	if partner, ok := o.Pairs.Unlink(id); ok {
		o.send(partner, core.NewDisconnected("your partner disconnected"))
		o.Registry.SetState(partner, domain.StateIdle)
	}
	o.Escalations.Cancel(id)
	o.Queue.Remove(id)
	o.Registry.SetState(id, domain.StateDisconnected)
	o.send(id, core.NewStatus("disconnected"))
}

// handleSignal relays the original frame bytes to the partner without
// touching the payload. A signal with no partner means the pair
// dissolved under us; clean up whatever is left and tell the sender.
func (o *Orchestrator) handleSignal(id core.ClientID, raw core.Frame) {
	partner, ok := o.Pairs.PartnerOf(id)
	if !ok {
		o.Escalations.Cancel(id)
		o.Queue.Remove(id)
		o.Registry.SetState(id, domain.StateIdle)
		o.send(id, core.NewStatus("you have no partner, reconnect to find one"))
		return
	}
	o.send(partner, raw)
}

// requeue puts a freshly unpaired handle back through matching under
// its own recorded mode preference. Caller holds mu.
func (o *Orchestrator) requeue(id core.ClientID) {
	sess, ok := o.Registry.Get(id)
	if !ok {
		return
	}
	mode := sess.Meta().Mode
	if match, ok := o.Queue.TryMatch(mode, o.eligible); ok {
		o.link(id, match, mode)
		return
	}
	o.Queue.Enqueue(id, mode)
	o.Registry.SetState(id, domain.StateWaiting)
	o.send(id, core.NewStatus("searching..."))
}

// eligible is the liveness predicate the queue applies to stale heads:
// the connection must still be registered, ready to send, and not have
// been paired through another path meanwhile.
func (o *Orchestrator) eligible(id core.ClientID) bool {
	sess, ok := o.Registry.Get(id)
	if !ok || !sess.Signal().Ready() {
		return false
	}
	_, paired := o.Pairs.PartnerOf(id)
	return !paired
}

// link installs the pair, announces it with opposite initiator
// polarity, and arms the escalation timer for voice pairs. The
// initiator side is picked at random so negotiation load balances out.
func (o *Orchestrator) link(a, b core.ClientID, mode domain.Mode) {
	o.Pairs.Link(a, b)
	o.Registry.SetState(a, domain.StatePaired)
	o.Registry.SetState(b, domain.StatePaired)

	aInitiates := rand.Intn(2) == 0
	o.send(a, core.NewPairFound(aInitiates))
	o.send(b, core.NewPairFound(!aInitiates))
	log.Info().Str("module", "orch").
		Str("cid_a", string(a)).Str("cid_b", string(b)).
		Str("mode", string(mode)).Msg("pair formed")

	if mode == domain.ModeVoice {
		o.Escalations.Schedule(a, b, o.Delay, o.onEscalation)
	}
}

// onEscalation runs on the timer goroutine and re-enters through mu.
// The bookkeeping claim plus the partner check guard against pairs
// that dissolved, and against handles re-paired with new partners,
// between scheduling and firing.
func (o *Orchestrator) onEscalation(a, b core.ClientID) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.Escalations.Fire(a, b) {
		return
	}
	if partner, ok := o.Pairs.PartnerOf(a); !ok || partner != b {
		return
	}
	o.send(a, core.NewEnableVideo("enabling video"))
	o.send(b, core.NewEnableVideo("enabling video"))
	log.Info().Str("module", "orch").
		Str("cid_a", string(a)).Str("cid_b", string(b)).Msg("voice pair escalated to video")
}

// Package orch hosts the session coordinator: the single component that
// reacts to transport lifecycle events and inbound frames, and drives
// the pairing queue, pair registry and escalation timers.
package orch

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Strangers/internal/app"
	"github.com/dkeye/Strangers/internal/core"
	"github.com/dkeye/Strangers/internal/domain"
)

// Orchestrator serializes every event (connect, frame, close, error,
// timer fire) behind one mutex, so each handler runs to completion as
// an atomic transaction over the sub-components. The sub-components
// carry no locks of their own; they are only touched while mu is held.
type Orchestrator struct {
	mu          sync.Mutex
	Registry    *app.Registry
	Queue       *app.PairingQueue
	Pairs       *app.PairRegistry
	Escalations *app.EscalationManager

	// Delay before a voice pair is told to enable video.
	Delay time.Duration
}

func New(delay time.Duration) *Orchestrator {
	return &Orchestrator{
		Registry:    app.NewRegistry(),
		Queue:       app.NewPairingQueue(),
		Pairs:       app.NewPairRegistry(),
		Escalations: app.NewEscalationManager(),
		Delay:       delay,
	}
}

// OnConnect registers a fresh connection in idle state.
func (o *Orchestrator) OnConnect(id core.ClientID, sess core.ClientSession) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Registry.Register(id, sess)
	o.send(id, core.NewStatus("press connect to start"))
}

// OnFrame dispatches one inbound frame. Malformed JSON and unknown
// types are dropped without a reply.
func (o *Orchestrator) OnFrame(id core.ClientID, raw core.Frame) {
	var env core.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Debug().Str("module", "orch").Str("cid", string(id)).Msg("dropped malformed frame")
		return
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	switch env.Type {
	case core.TypeConnect:
		var req core.ConnectRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return
		}
		o.handleConnect(id, domain.ParseMode(req.Mode))
	case core.TypeDisconnect:
		o.handleDisconnect(id)
	case core.TypeSignal:
		o.handleSignal(id, raw)
	default:
		log.Debug().Str("module", "orch").Str("type", env.Type).Msg("ignored unknown frame type")
	}
}

// OnClose tears down a connection whose transport went away. Unlike an
// explicit DISCONNECT, the surviving partner is put back into matching
// so a silent drop does not strand it.
func (o *Orchestrator) OnClose(id core.ClientID) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if partner, ok := o.Pairs.Unlink(id); ok {
		o.Escalations.Cancel(id)
		o.send(partner, core.NewDisconnected("your partner disconnected"))
		o.requeue(partner)
	}
	o.Escalations.Cancel(id)
	o.Queue.Remove(id)
	o.Registry.Forget(id)
	log.Info().Str("module", "orch").Str("cid", string(id)).Msg("connection closed")
}

// OnError is handled like a close: the client is already gone, nothing
// is reported back to it.
func (o *Orchestrator) OnError(id core.ClientID, err error) {
	log.Warn().Err(err).Str("module", "orch").Str("cid", string(id)).Msg("transport error")
	o.OnClose(id)
}

// Stats is a read-only snapshot for the HTTP API.
type Stats struct {
	Clients      int `json:"clients"`
	WaitingVoice int `json:"waiting_voice"`
	WaitingVideo int `json:"waiting_video"`
	Pairs        int `json:"pairs"`
}

func (o *Orchestrator) Snapshot() Stats {
	o.mu.Lock()
	defer o.mu.Unlock()
	return Stats{
		Clients:      o.Registry.Count(),
		WaitingVoice: o.Queue.Waiting(domain.ModeVoice),
		WaitingVideo: o.Queue.Waiting(domain.ModeVideo),
		Pairs:        o.Pairs.Count(),
	}
}

// send delivers fire-and-forget: a handle without a ready transport
// simply misses the message.
func (o *Orchestrator) send(id core.ClientID, f core.Frame) {
	sess, ok := o.Registry.Get(id)
	if !ok {
		return
	}
	if err := sess.Signal().TrySend(f); err != nil {
		log.Debug().Err(err).Str("module", "orch").Str("cid", string(id)).Msg("send dropped")
	}
}

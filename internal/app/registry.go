package app

import (
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Strangers/internal/core"
	"github.com/dkeye/Strangers/internal/domain"
)

// Registry tracks every live connection: its session (meta + transport)
// and nothing else. It never sends messages.
//
// Not safe for concurrent use on its own; the orchestrator owns it and
// serializes every access (see orch.Orchestrator).
type Registry struct {
	sessions map[core.ClientID]core.ClientSession
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[core.ClientID]core.ClientSession)}
}

// Register records a new connection in idle state. Re-registering the
// same id replaces the previous session.
func (r *Registry) Register(id core.ClientID, sess core.ClientSession) {
	r.sessions[id] = sess
	log.Debug().Str("module", "app.registry").Str("cid", string(id)).Msg("registered client")
}

func (r *Registry) Get(id core.ClientID) (core.ClientSession, bool) {
	s, ok := r.sessions[id]
	return s, ok
}

// SetMode records the client's matching preference. No-op for unknown ids.
func (r *Registry) SetMode(id core.ClientID, mode domain.Mode) {
	if s, ok := r.sessions[id]; ok {
		s.Meta().Mode = mode
	}
}

// SetState moves the client's lifecycle state. Setting an already-set
// state is a no-op, not an error.
func (r *Registry) SetState(id core.ClientID, state domain.State) {
	if s, ok := r.sessions[id]; ok {
		s.Meta().State = state
	}
}

// Forget removes all trace of the connection. Called only after queue
// and pairing cleanup completed.
func (r *Registry) Forget(id core.ClientID) {
	delete(r.sessions, id)
	log.Debug().Str("module", "app.registry").Str("cid", string(id)).Msg("forgot client")
}

func (r *Registry) Count() int { return len(r.sessions) }

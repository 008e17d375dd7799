package app

import (
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Strangers/internal/core"
)

// PairRegistry stores every live pairing as two directed entries
// (a->b and b->a) for O(1) lookup from either side.
// Serialized by the orchestrator.
type PairRegistry struct {
	partners map[core.ClientID]core.ClientID
}

func NewPairRegistry() *PairRegistry {
	return &PairRegistry{partners: make(map[core.ClientID]core.ClientID)}
}

// Link installs both directions. Linking a handle that is already
// paired is a coordinator bug; the call is refused to keep the registry
// symmetric.
func (p *PairRegistry) Link(a, b core.ClientID) {
	if _, ok := p.partners[a]; ok {
		log.Warn().Str("module", "app.pairs").Str("cid", string(a)).Msg("link refused: already paired")
		return
	}
	if _, ok := p.partners[b]; ok {
		log.Warn().Str("module", "app.pairs").Str("cid", string(b)).Msg("link refused: already paired")
		return
	}
	p.partners[a] = b
	p.partners[b] = a
}

func (p *PairRegistry) PartnerOf(id core.ClientID) (core.ClientID, bool) {
	partner, ok := p.partners[id]
	return partner, ok
}

// Unlink removes both directions and returns the former partner so the
// caller can notify or requeue it. Idempotent: unlinking an unpaired
// handle returns false and mutates nothing.
func (p *PairRegistry) Unlink(id core.ClientID) (core.ClientID, bool) {
	partner, ok := p.partners[id]
	if !ok {
		return "", false
	}
	delete(p.partners, id)
	delete(p.partners, partner)
	return partner, true
}

// Count reports the number of live pairs.
func (p *PairRegistry) Count() int { return len(p.partners) / 2 }

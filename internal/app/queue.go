package app

import (
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Strangers/internal/core"
	"github.com/dkeye/Strangers/internal/domain"
)

// PairingQueue holds clients waiting for a partner, one FIFO sequence
// per requested mode. Insertion order is the only fairness guarantee.
//
// Stale entries (connection gone, or already paired through another
// path) are filtered lazily at match time rather than eagerly on every
// disconnect; the cost is one scan proportional to queue length per
// match attempt. Serialized by the orchestrator.
type PairingQueue struct {
	waiting map[domain.Mode][]core.ClientID
}

func NewPairingQueue() *PairingQueue {
	return &PairingQueue{waiting: make(map[domain.Mode][]core.ClientID)}
}

// Enqueue appends to the tail of the mode's sequence. The orchestrator
// guarantees the handle is neither waiting nor paired; a duplicate is
// dropped defensively rather than queued twice.
func (q *PairingQueue) Enqueue(id core.ClientID, mode domain.Mode) {
	if slices.Contains(q.waiting[mode], id) {
		log.Warn().Str("module", "app.queue").Str("cid", string(id)).Msg("already waiting, enqueue ignored")
		return
	}
	q.waiting[mode] = append(q.waiting[mode], id)
}

// TryMatch pops the oldest live entry for mode, or "" when none remain.
// alive reports whether an entry is still eligible (connection open and
// not paired meanwhile); entries failing the check are discarded.
func (q *PairingQueue) TryMatch(mode domain.Mode, alive func(core.ClientID) bool) (core.ClientID, bool) {
	seq := q.waiting[mode]
	for len(seq) > 0 {
		head := seq[0]
		seq = seq[1:]
		if alive(head) {
			q.waiting[mode] = seq
			return head, true
		}
		log.Debug().Str("module", "app.queue").Str("cid", string(head)).Msg("dropped stale waiting entry")
	}
	q.waiting[mode] = seq
	return "", false
}

// Remove deletes the handle from every mode sequence. No-op if absent.
func (q *PairingQueue) Remove(id core.ClientID) {
	for mode, seq := range q.waiting {
		if i := slices.Index(seq, id); i >= 0 {
			q.waiting[mode] = slices.Delete(seq, i, i+1)
		}
	}
}

// Waiting reports how many entries sit in the mode's sequence,
// stale ones included.
func (q *PairingQueue) Waiting(mode domain.Mode) int { return len(q.waiting[mode]) }

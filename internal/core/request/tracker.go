package request

import "sync"

// Tracker issues a monotonically increasing sequence number per
// operation. Two overlapping dispatches of the same operation race on
// the wire; only the resolution holding the latest sequence number may
// be applied, so a slow first response cannot clobber a fast second.
type Tracker struct {
	mu   sync.Mutex
	seqs map[string]uint64
}

func NewTracker() *Tracker {
	return &Tracker{seqs: make(map[string]uint64)}
}

// Begin registers a new dispatch of op and returns its sequence number.
func (t *Tracker) Begin(op string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seqs[op]++
	return t.seqs[op]
}

// Latest reports whether seq is still the most recent dispatch of op.
func (t *Tracker) Latest(op string, seq uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.seqs[op] == seq
}

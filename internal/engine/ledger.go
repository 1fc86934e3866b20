package engine

import (
	"time"

	"github.com/azsmoke-io/azsmoke/internal/plan"
)

// Entry records one successfully created resource. Provisional entries mark
// resources whose create was cancelled in flight: the terminal outcome is
// unknown, so cleanup must still attempt a deletion.
type Entry struct {
	Descriptor  *plan.Descriptor
	ID          string
	Outputs     map[string]string
	CreatedAt   time.Time
	Provisional bool
}

// Ledger is the append-only, in-memory record of provisioned resources and
// the sole source of truth for cleanup. Cleanup targets are never
// re-derived by querying the provider. A ledger is owned by exactly one
// executor/coordinator pair within a run and is not safe for concurrent
// use; none occurs, the pipeline is strictly sequential.
type Ledger struct {
	entries []*Entry
}

func NewLedger() *Ledger {
	return &Ledger{}
}

// Append records a created resource. Entries are appended strictly in
// creation order.
func (l *Ledger) Append(e *Entry) {
	l.entries = append(l.entries, e)
}

// Entries returns the recorded entries in creation order.
func (l *Ledger) Entries() []*Entry {
	out := make([]*Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of recorded entries.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Drain removes and returns all entries in reverse creation order. Cleanup
// consumes the ledger through Drain, so a second cleanup pass over the same
// ledger finds it empty and issues no provider calls.
func (l *Ledger) Drain() []*Entry {
	out := make([]*Entry, len(l.entries))
	for i, e := range l.entries {
		out[len(l.entries)-1-i] = e
	}
	l.entries = nil
	return out
}

// Lookup resolves an output attribute of a previously created resource by
// descriptor name. It satisfies plan.Lookup for reference resolution.
func (l *Ledger) Lookup(descriptor, attribute string) (string, bool) {
	for _, e := range l.entries {
		if e.Descriptor.Name != descriptor {
			continue
		}
		v, ok := e.Outputs[attribute]
		return v, ok
	}
	return "", false
}

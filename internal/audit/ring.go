package audit

import (
	"context"
	"sync"
)

// DefaultRetention is the ring size used when none is given.
const DefaultRetention = 1000

// Ring keeps the newest entries in memory.
type Ring struct {
	mu        sync.Mutex
	entries   []Entry
	next      int
	full      bool
	retention int
}

// NewRing returns a ring holding at most retention entries. retention <= 0 uses DefaultRetention.
func NewRing(retention int) *Ring {
	if retention <= 0 {
		retention = DefaultRetention
	}

	return &Ring{
		entries:   make([]Entry, retention),
		retention: retention,
	}
}

// Record implements Sink. The oldest entry is overwritten once the ring is full.
func (r *Ring) Record(_ context.Context, entry Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[r.next] = entry
	r.next = (r.next + 1) % r.retention

	if r.next == 0 {
		r.full = true
	}

	return nil
}

// Entries returns the retained entries, oldest first.
func (r *Ring) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.full {
		out := make([]Entry, r.next)
		copy(out, r.entries[:r.next])

		return out
	}

	out := make([]Entry, 0, r.retention)
	out = append(out, r.entries[r.next:]...)
	out = append(out, r.entries[:r.next]...)

	return out
}

// Len returns the number of retained entries.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.full {
		return r.retention
	}

	return r.next
}

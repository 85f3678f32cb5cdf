// Package habitlock serializes habit completion per habit ID. Two concurrent
// completes for the same habit would otherwise both read a stale
// last_completed_at and double-increment the streak; holding the habit's lock
// across the read-compute-write turns the second request into the normal
// same-day no-op.
package habitlock

import (
	"sync"

	"github.com/google/uuid"
)

// Locker provides one mutex per habit ID. The zero value is not usable;
// call New.
type Locker struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

// New creates a Locker.
func New() *Locker {
	return &Locker{locks: make(map[uuid.UUID]*entry)}
}

// Lock acquires the mutex for the given habit ID, creating it on first use.
// The returned function releases the lock and frees the entry once no other
// goroutine is waiting on it.
func (l *Locker) Lock(id uuid.UUID) (unlock func()) {
	l.mu.Lock()
	e, ok := l.locks[id]
	if !ok {
		e = &entry{}
		l.locks[id] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}

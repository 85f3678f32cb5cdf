package habitlock

import (
	"sync"
	"testing"

	"github.com/google/uuid"
)

func TestLockerSerializesSameID(t *testing.T) {
	t.Parallel()

	l := New()
	id := uuid.New()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := l.Lock(id)
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Errorf("counter = %d, want 50", counter)
	}
}

func TestLockerIndependentIDs(t *testing.T) {
	t.Parallel()

	l := New()
	a, b := uuid.New(), uuid.New()

	unlockA := l.Lock(a)
	// Locking a different ID must not block while a is held.
	done := make(chan struct{})
	go func() {
		unlockB := l.Lock(b)
		unlockB()
		close(done)
	}()
	<-done
	unlockA()
}

func TestLockerFreesEntries(t *testing.T) {
	t.Parallel()

	l := New()
	id := uuid.New()

	unlock := l.Lock(id)
	unlock()

	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.locks) != 0 {
		t.Errorf("locks map has %d entries after release, want 0", len(l.locks))
	}
}

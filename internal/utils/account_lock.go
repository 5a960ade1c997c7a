package utils

import "sync"

// AccountLock serializes check-then-act sequences per account id. The quota
// engine holds it across the read of today's events and the write of the new
// one, two racing sends by the same user line up instead of both passing the
// free-tier check.
type AccountLock struct {
	mu      sync.Mutex
	entries map[int64]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func NewAccountLock() *AccountLock {
	return &AccountLock{
		entries: make(map[int64]*lockEntry),
	}
}

// Lock blocks until the per-account mutex is held and returns the matching
// unlock. Entries are dropped once the last holder releases them, the map
// does not grow with the user base.
func (l *AccountLock) Lock(id int64) (unlock func()) {
	l.mu.Lock()
	entry, ok := l.entries[id]
	if !ok {
		entry = &lockEntry{}
		l.entries[id] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.entries, id)
		}
		l.mu.Unlock()
	}
}

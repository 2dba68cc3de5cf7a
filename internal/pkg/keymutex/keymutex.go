// Package keymutex provides a mutex keyed by string. The fulfillment core
// uses it to serialize assignment and backlog operations per restaurant while
// letting different restaurants proceed in parallel.
package keymutex

import "sync"

// KeyMutex is a set of named mutexes. Locks are created on first use and
// removed once no goroutine holds or waits for them, so the map does not grow
// with the number of distinct keys ever seen.
//
// The zero value is not usable; create instances with New.
type KeyMutex struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// New creates an empty KeyMutex.
func New() *KeyMutex {
	return &KeyMutex{
		locks: make(map[string]*lockEntry),
	}
}

// Lock acquires the mutex for key, blocking while another goroutine holds it.
func (k *KeyMutex) Lock(key string) {
	k.mu.Lock()
	entry, ok := k.locks[key]
	if !ok {
		entry = &lockEntry{}
		k.locks[key] = entry
	}
	entry.refs++
	k.mu.Unlock()

	entry.mu.Lock()
}

// Unlock releases the mutex for key. Unlocking a key that is not held is a
// programming error and panics, same as sync.Mutex.
func (k *KeyMutex) Unlock(key string) {
	k.mu.Lock()
	entry, ok := k.locks[key]
	if !ok {
		k.mu.Unlock()
		panic("keymutex: unlock of unlocked key " + key)
	}
	entry.refs--
	if entry.refs == 0 {
		delete(k.locks, key)
	}
	k.mu.Unlock()

	entry.mu.Unlock()
}

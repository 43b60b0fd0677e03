// Package caching provides application-wide caching and related utilities.
package caching

import "sync"

// WarmingLock ensures only one background warming task runs for a given
// key at a time, so concurrent triggers cannot stampede a store's
// database while its caches are being filled.
type WarmingLock struct {
	mu    sync.Mutex
	locks map[string]struct{}
}

// NewWarmingLock creates a new instance of a WarmingLock.
func NewWarmingLock() *WarmingLock {
	return &WarmingLock{
		locks: make(map[string]struct{}),
	}
}

// TryLock attempts to acquire the lock for a key without blocking.
// It returns false if the lock is already held.
func (l *WarmingLock) TryLock(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.locks[key]; exists {
		return false
	}

	l.locks[key] = struct{}{}
	return true
}

// Unlock releases the lock for a key. Call with defer in the goroutine
// that acquired it.
func (l *WarmingLock) Unlock(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.locks, key)
}

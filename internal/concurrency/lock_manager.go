package concurrency

import "sync"

// LockManager hands out one mutex per key. The task service locks on the
// user ID around completions and deletes, so a user's rewards apply one at
// a time no matter how many requests land together.
//
// Locks are never released back; the population is bounded by the number of
// distinct users seen by this process.
type LockManager struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{locks: make(map[string]*sync.Mutex)}
}

// GetLock returns the mutex for the given key, creating it on first use.
// Callers holding the result serialize against everyone else using the
// same key.
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	lock, ok := lm.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		lm.locks[key] = lock
	}
	return lock
}

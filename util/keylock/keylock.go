package keylock

import (
	"sync"
)

// entry is a per-key lock with reference counting
type entry struct {
	mu   sync.RWMutex
	refs int
}

// KeyLock hands out read/write locks scoped to a single string key.
//
// The registry uses it to serialise structural changes to one tenant's plant
// (first-access seeding, reset) without taking a process-wide write lock, so
// tenants never wait on each other. Entries are created on demand and dropped
// once the last holder releases them.
//
//	kl := keylock.New()
//	unlock := kl.Lock("tenant-key")
//	defer unlock()
//
// The returned unlock function MUST be called exactly once.
type KeyLock struct {
	mu    sync.Mutex
	locks map[string]*entry
}

// New creates an empty KeyLock
func New() *KeyLock {
	return &KeyLock{
		locks: make(map[string]*entry),
	}
}

// acquire returns the entry for key with its reference count already taken
func (kl *KeyLock) acquire(key string) *entry {
	kl.mu.Lock()
	defer kl.mu.Unlock()

	e, ok := kl.locks[key]
	if !ok {
		e = &entry{}
		kl.locks[key] = e
	}
	e.refs++
	return e
}

// release drops one reference and forgets the entry when it reaches zero
func (kl *KeyLock) release(key string) {
	kl.mu.Lock()
	defer kl.mu.Unlock()

	e, ok := kl.locks[key]
	if !ok {
		return
	}
	e.refs--
	if e.refs == 0 {
		delete(kl.locks, key)
	}
}

// Lock acquires the exclusive lock for key
func (kl *KeyLock) Lock(key string) func() {
	e := kl.acquire(key)
	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		kl.release(key)
	}
}

// RLock acquires the shared lock for key
func (kl *KeyLock) RLock(key string) func() {
	e := kl.acquire(key)
	e.mu.RLock()
	return func() {
		e.mu.RUnlock()
		kl.release(key)
	}
}

// Do runs fn while holding the exclusive lock for key
func (kl *KeyLock) Do(key string, fn func()) {
	unlock := kl.Lock(key)
	defer unlock()
	fn()
}

// Len returns the number of keys currently held or waited on
func (kl *KeyLock) Len() int {
	kl.mu.Lock()
	defer kl.mu.Unlock()
	return len(kl.locks)
}

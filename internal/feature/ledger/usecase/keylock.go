package usecase

import (
	"fmt"
	"sync"
)

// keyLock serializes submissions per owner+symbol so two concurrent
// writes for the same position cannot interleave their
// read-validate-append-recompute sequence. Writes to unrelated symbols,
// and all reads, proceed without touching another key's lock.
//
// Lock entries are kept for the life of the process; the key space is
// bounded by the number of owner+symbol pairs ever written.
type keyLock struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyLock() *keyLock {
	return &keyLock{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for the owner+symbol pair and returns the
// matching unlock function.
func (k *keyLock) Lock(ownerID uint, sym string) func() {
	key := fmt.Sprintf("%d:%s", ownerID, sym)

	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}

package dialogue

import "sync"

// userLocks serializes turn processing per user number. Two simultaneous
// inbound messages from the same user would otherwise race GetOrCreate and
// both create fresh conversations.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[string]*sync.Mutex)}
}

// lock acquires the mutex for key and returns its unlock func.
func (u *userLocks) lock(key string) func() {
	u.mu.Lock()
	m, ok := u.locks[key]
	if !ok {
		m = &sync.Mutex{}
		u.locks[key] = m
	}
	u.mu.Unlock()

	m.Lock()
	return m.Unlock
}

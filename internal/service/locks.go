package service

import "sync"

// userLocks serializes the load-modify-persist sequence per user.
// Submissions for different users proceed in parallel; two concurrent
// submissions for the same user would otherwise race on the running
// means and high-water marks.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[string]*sync.Mutex)}
}

// acquire locks the mutex for userID and returns its unlock func.
// Lock entries are kept for the process lifetime; the set of active
// users per instance is small enough not to matter.
func (l *userLocks) acquire(userID string) func() {
	l.mu.Lock()
	m, ok := l.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

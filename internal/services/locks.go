package services

import "sync"

// sessionLocks admits one action per session at a time.
type sessionLocks struct {
	mu   sync.Mutex
	busy map[string]struct{}
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{busy: make(map[string]struct{})}
}

func (l *sessionLocks) tryAcquire(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.busy[id]; ok {
		return false
	}
	l.busy[id] = struct{}{}
	return true
}

func (l *sessionLocks) release(id string) {
	l.mu.Lock()
	delete(l.busy, id)
	l.mu.Unlock()
}

package cart

import "sync"

// userLocks serializes cart mutations and checkout for a single user.
// Different users hold different mutexes and never contend.
type userLocks struct {
	mu sync.Mutex
	m  map[int64]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{m: make(map[int64]*sync.Mutex)}
}

func (l *userLocks) get(userID int64) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	mu, ok := l.m[userID]
	if !ok {
		mu = &sync.Mutex{}
		l.m[userID] = mu
	}
	return mu
}

func (l *userLocks) lock(userID int64) func() {
	mu := l.get(userID)
	mu.Lock()
	return mu.Unlock
}

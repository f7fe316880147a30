package memory

import (
	"context"
	"sync"
	"time"

	"github.com/netscan/netscan-api/internal/ports"
)

// LockoutStore is an in-process ports.LockoutStore used when no Redis is
// configured. State is lost on restart, which for brute-force tracking is an
// acceptable dev-mode tradeoff.
type LockoutStore struct {
	mu     sync.Mutex
	states map[string]ports.LockoutState
}

func NewLockoutStore() *LockoutStore {
	return &LockoutStore{states: make(map[string]ports.LockoutState)}
}

func (s *LockoutStore) Get(_ context.Context, key string) (ports.LockoutState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[key], nil
}

func (s *LockoutStore) RecordFailure(_ context.Context, key string, now time.Time, threshold int, lockoutWindow time.Duration) (ports.LockoutState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.states[key]
	state.FailedCount++
	if state.FailedCount >= threshold {
		lockedUntil := now.Add(lockoutWindow).UTC()
		state.LockedUntil = &lockedUntil
	}
	s.states[key] = state
	return state, nil
}

func (s *LockoutStore) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, key)
	return nil
}

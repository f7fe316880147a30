// Package memory provides in-process storage backends. They carry the full
// repository semantics (uniqueness, eviction, pagination) and back both the
// dev-mode server and the test suites.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/netscan/netscan-api/internal/domain"
	"github.com/netscan/netscan-api/internal/ports"
)

// UserStore is an in-memory ports.UserRepository.
type UserStore struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]domain.User
	byEmail map[string]uuid.UUID
}

func NewUserStore() *UserStore {
	return &UserStore{
		byID:    make(map[uuid.UUID]domain.User),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (s *UserStore) Create(_ context.Context, params ports.CreateUserParams) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(params.Email)
	if _, exists := s.byEmail[email]; exists {
		return domain.User{}, fmt.Errorf("%w: email %q", domain.ErrConflict, email)
	}

	user := domain.User{
		UserID:       uuid.New(),
		Name:         params.Name,
		Email:        email,
		PasswordHash: params.PasswordHash,
		CreatedAt:    params.CreatedAt,
	}
	s.byID[user.UserID] = user
	s.byEmail[email] = user.UserID
	return user, nil
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return s.byID[id], nil
}

func (s *UserStore) GetByID(_ context.Context, userID uuid.UUID) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byID[userID]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return user, nil
}

func (s *UserStore) UpdateName(_ context.Context, userID uuid.UUID, name string, _ time.Time) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byID[userID]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	user.Name = name
	s.byID[userID] = user
	return user, nil
}

func (s *UserStore) SetSessionMarker(_ context.Context, userID uuid.UUID, marker uuid.UUID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byID[userID]
	if !ok {
		return domain.ErrNotFound
	}
	user.SessionMarker = marker
	if marker != uuid.Nil {
		user.LastLoginAt = at
	}
	s.byID[userID] = user
	return nil
}

// historyBucket is one owner's collection, newest first. Each bucket has its
// own lock so owners never contend with each other.
type historyBucket struct {
	mu      sync.Mutex
	records []domain.TestResult
}

// HistoryStore is an in-memory ports.HistoryRepository.
type HistoryStore struct {
	mu      sync.RWMutex
	buckets map[uuid.UUID]*historyBucket
}

func NewHistoryStore() *HistoryStore {
	return &HistoryStore{buckets: make(map[uuid.UUID]*historyBucket)}
}

func (s *HistoryStore) bucket(ownerID uuid.UUID) *historyBucket {
	s.mu.RLock()
	b, ok := s.buckets[ownerID]
	s.mu.RUnlock()
	if ok {
		return b
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok = s.buckets[ownerID]; ok {
		return b
	}
	b = &historyBucket{}
	s.buckets[ownerID] = b
	return b
}

func (s *HistoryStore) Append(_ context.Context, record domain.TestResult, cap int) (domain.TestResult, error) {
	b := s.bucket(record.UserID)
	b.mu.Lock()
	defer b.mu.Unlock()

	b.records = append([]domain.TestResult{record}, b.records...)
	if cap > 0 && len(b.records) > cap {
		b.records = b.records[:cap]
	}
	return record, nil
}

func (s *HistoryStore) List(_ context.Context, ownerID uuid.UUID, page, limit int) (ports.HistoryPage, error) {
	b := s.bucket(ownerID)
	b.mu.Lock()
	defer b.mu.Unlock()

	total := len(b.records)
	totalPages := 1
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	items := make([]domain.TestResult, end-start)
	copy(items, b.records[start:end])

	return ports.HistoryPage{
		Items:      items,
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
		Limit:      limit,
	}, nil
}

func (s *HistoryStore) GetByID(_ context.Context, id uuid.UUID) (domain.TestResult, error) {
	s.mu.RLock()
	buckets := make([]*historyBucket, 0, len(s.buckets))
	for _, b := range s.buckets {
		buckets = append(buckets, b)
	}
	s.mu.RUnlock()

	for _, b := range buckets {
		b.mu.Lock()
		for _, r := range b.records {
			if r.ID == id {
				b.mu.Unlock()
				return r, nil
			}
		}
		b.mu.Unlock()
	}
	return domain.TestResult{}, domain.ErrNotFound
}

func (s *HistoryStore) Clear(_ context.Context, ownerID uuid.UUID) (int, error) {
	b := s.bucket(ownerID)
	b.mu.Lock()
	defer b.mu.Unlock()

	n := len(b.records)
	b.records = nil
	return n, nil
}

func (s *HistoryStore) SnapshotByOwner(_ context.Context, ownerID uuid.UUID) ([]domain.TestResult, error) {
	b := s.bucket(ownerID)
	b.mu.Lock()
	defer b.mu.Unlock()

	snapshot := make([]domain.TestResult, len(b.records))
	copy(snapshot, b.records)
	return snapshot, nil
}

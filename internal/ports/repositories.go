package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/netscan/netscan-api/internal/domain"
)

// CreateUserParams captures the inputs of user creation. The password hash is
// produced by the application layer before this call; repositories never see a
// plaintext password.
type CreateUserParams struct {
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// UserRepository defines persistence operations for account identities.
// GetByEmail returns the raw record including the password hash and is for
// internal credential checks only; everything user-facing goes through
// domain.User.Sanitize.
type UserRepository interface {
	Create(ctx context.Context, params CreateUserParams) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (domain.User, error)
	UpdateName(ctx context.Context, userID uuid.UUID, name string, updatedAt time.Time) (domain.User, error)
	// SetSessionMarker atomically overwrites the user's current session marker.
	// This is the single-active-session enforcement point: a non-nil marker
	// supersedes any previous login, uuid.Nil ends the session. When a session
	// starts the user's last-login timestamp is touched in the same write.
	SetSessionMarker(ctx context.Context, userID uuid.UUID, marker uuid.UUID, at time.Time) error
}

// HistoryPage is one page of a user's history in descending creation order.
// Total and TotalPages reflect the owner's full post-eviction collection.
type HistoryPage struct {
	Items      []domain.TestResult
	Total      int
	Page       int
	TotalPages int
	Limit      int
}

// HistoryRepository owns the per-user bounded history collection.
// Append and Clear for one owner are serialized against each other and against
// snapshots, so eviction always sees a consistent count and aggregation never
// observes a partially evicted list. Operations for distinct owners are
// independent.
type HistoryRepository interface {
	// Append inserts the record and evicts the oldest entries beyond cap in one
	// atomic step. Eviction is silent: the history is a bounded recency cache,
	// not an archive.
	Append(ctx context.Context, record domain.TestResult, cap int) (domain.TestResult, error)
	List(ctx context.Context, ownerID uuid.UUID, page, limit int) (HistoryPage, error)
	// GetByID is a global lookup; ownership is checked by the caller so that a
	// cross-owner read can be reported as forbidden rather than not found.
	GetByID(ctx context.Context, id uuid.UUID) (domain.TestResult, error)
	Clear(ctx context.Context, ownerID uuid.UUID) (int, error)
	// SnapshotByOwner returns a consistent copy of the owner's full collection,
	// newest first, for aggregation.
	SnapshotByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.TestResult, error)
}

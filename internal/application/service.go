package application

import (
	"time"

	"github.com/netscan/netscan-api/internal/ports"
)

// Config carries the tunables the use-case layer needs. Storage- and
// transport-level settings stay in bootstrap.
type Config struct {
	TokenTTL             time.Duration
	HistoryCap           int
	DefaultPageSize      int
	MaxPageSize          int
	FailedLoginThreshold int
	LockoutDuration      time.Duration
}

type Service struct {
	cfg      Config
	users    ports.UserRepository
	history  ports.HistoryRepository
	lockouts ports.LockoutStore
	hasher   ports.PasswordHasher
	signer   ports.TokenSigner
	nowFn    func() time.Time
}

type Dependencies struct {
	Config   Config
	Users    ports.UserRepository
	History  ports.HistoryRepository
	Lockouts ports.LockoutStore
	Hasher   ports.PasswordHasher
	Signer   ports.TokenSigner
}

func NewService(deps Dependencies) *Service {
	return &Service{
		cfg:      deps.Config,
		users:    deps.Users,
		history:  deps.History,
		lockouts: deps.Lockouts,
		hasher:   deps.Hasher,
		signer:   deps.Signer,
		nowFn:    func() time.Time { return time.Now().UTC() },
	}
}

package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/netscan/netscan-api/internal/domain"
	"github.com/netscan/netscan-api/internal/ports"
)

const (
	minNameLength = 2
	maxNameLength = 100

	lockoutKeyPrefix = "login:"
)

// Register creates an account and immediately starts its first session, so the
// client holds a usable token without a follow-up login.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	name, err := normalizeName(req.Name)
	if err != nil {
		return AuthResponse{}, err
	}
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return AuthResponse{}, err
	}
	if err := domain.ValidatePassword(req.Password); err != nil {
		return AuthResponse{}, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return AuthResponse{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, ports.CreateUserParams{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.nowFn(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return AuthResponse{}, fmt.Errorf("%w: email already registered", domain.ErrConflict)
		}
		return AuthResponse{}, fmt.Errorf("create user: %w", err)
	}

	return s.startSession(ctx, user)
}

// Login verifies credentials and starts a new session. Any previously issued
// token for this account is silently superseded.
func (s *Service) Login(ctx context.Context, req LoginRequest) (AuthResponse, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		// A malformed email can never match an account; report it the same way
		// as a wrong password to avoid an enumeration side channel.
		return AuthResponse{}, domain.ErrInvalidCredentials
	}

	lockoutKey := lockoutKeyPrefix + email
	state, err := s.lockouts.Get(ctx, lockoutKey)
	if err != nil {
		return AuthResponse{}, fmt.Errorf("lockout lookup: %w", err)
	}
	now := s.nowFn()
	if state.LockedUntil != nil && now.Before(*state.LockedUntil) {
		return AuthResponse{}, fmt.Errorf("%w until %s", domain.ErrAccountLocked, state.LockedUntil.Format("15:04:05"))
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return AuthResponse{}, domain.ErrInvalidCredentials
		}
		return AuthResponse{}, fmt.Errorf("lookup user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		state, recErr := s.lockouts.RecordFailure(ctx, lockoutKey, now, s.cfg.FailedLoginThreshold, s.cfg.LockoutDuration)
		if recErr != nil {
			return AuthResponse{}, fmt.Errorf("record login failure: %w", recErr)
		}
		if state.LockedUntil != nil {
			slog.Warn("account locked after repeated failed logins",
				"operation", "login",
				"user_id", user.UserID,
				"failed_count", state.FailedCount,
			)
			return AuthResponse{}, fmt.Errorf("%w until %s", domain.ErrAccountLocked, state.LockedUntil.Format("15:04:05"))
		}
		return AuthResponse{}, domain.ErrInvalidCredentials
	}

	if err := s.lockouts.Clear(ctx, lockoutKey); err != nil {
		return AuthResponse{}, fmt.Errorf("clear lockout: %w", err)
	}

	return s.startSession(ctx, user)
}

// Authenticate is the read-only gate every protected operation passes through.
// It resolves a bearer token to a sanitized profile, distinguishing structural
// failures, expiry, explicit logout, and supersession by a newer login.
func (s *Service) Authenticate(ctx context.Context, token string) (domain.Profile, error) {
	claims, err := s.signer.ParseAndValidate(token)
	if err != nil {
		if errors.Is(err, domain.ErrTokenExpired) {
			return domain.Profile{}, domain.ErrTokenExpired
		}
		return domain.Profile{}, fmt.Errorf("%w: invalid token", domain.ErrUnauthenticated)
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Profile{}, fmt.Errorf("%w: unknown account", domain.ErrUnauthenticated)
		}
		return domain.Profile{}, fmt.Errorf("lookup user: %w", err)
	}

	if !user.HasActiveSession() {
		return domain.Profile{}, fmt.Errorf("%w: session ended", domain.ErrUnauthenticated)
	}
	if user.SessionMarker != claims.SessionMarker {
		return domain.Profile{}, domain.ErrSessionSuperseded
	}

	return user.Sanitize(), nil
}

// Logout ends the current session by clearing the stored marker. Every token
// issued so far becomes invalid, whatever device holds it.
func (s *Service) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := s.users.SetSessionMarker(ctx, userID, uuid.Nil, s.nowFn()); err != nil {
		return fmt.Errorf("clear session marker: %w", err)
	}
	return nil
}

// UpdateProfile renames the account. Email and password are immutable through
// this path.
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (domain.Profile, error) {
	name, err := normalizeName(req.Name)
	if err != nil {
		return domain.Profile{}, err
	}
	user, err := s.users.UpdateName(ctx, userID, name, s.nowFn())
	if err != nil {
		return domain.Profile{}, fmt.Errorf("update name: %w", err)
	}
	return user.Sanitize(), nil
}

// startSession mints a fresh session marker, persists it as the account's only
// active session, and signs a token bound to it.
func (s *Service) startSession(ctx context.Context, user domain.User) (AuthResponse, error) {
	marker := uuid.New()
	now := s.nowFn()

	if err := s.users.SetSessionMarker(ctx, user.UserID, marker, now); err != nil {
		return AuthResponse{}, fmt.Errorf("store session marker: %w", err)
	}
	user.SessionMarker = marker
	user.LastLoginAt = now

	token, err := s.signer.Sign(ports.AuthClaims{
		UserID:        user.UserID,
		SessionMarker: marker,
		IssuedAt:      now,
		ExpiresAt:     now.Add(s.cfg.TokenTTL),
	})
	if err != nil {
		return AuthResponse{}, fmt.Errorf("sign token: %w", err)
	}

	return AuthResponse{
		Token:     token,
		ExpiresIn: int64(s.cfg.TokenTTL.Seconds()),
		User:      user.Sanitize(),
	}, nil
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if len(name) < minNameLength {
		return "", fmt.Errorf("%w: name must be at least %d characters", domain.ErrInvalidInput, minNameLength)
	}
	if len(name) > maxNameLength {
		return "", fmt.Errorf("%w: name must be <= %d characters", domain.ErrInvalidInput, maxNameLength)
	}
	return name, nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("%w: malformed email address", domain.ErrInvalidInput)
	}
	return email, nil
}

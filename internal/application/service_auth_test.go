package application_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/netscan/netscan-api/internal/adapters/memory"
	"github.com/netscan/netscan-api/internal/adapters/security"
	"github.com/netscan/netscan-api/internal/application"
	"github.com/netscan/netscan-api/internal/domain"
)

type fixture struct {
	service *application.Service
	history *memory.HistoryStore
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWithConfig(t, application.Config{
		TokenTTL:             time.Hour,
		HistoryCap:           100,
		DefaultPageSize:      20,
		MaxPageSize:          100,
		FailedLoginThreshold: 5,
		LockoutDuration:      15 * time.Minute,
	})
}

func newFixtureWithConfig(t *testing.T, cfg application.Config) *fixture {
	t.Helper()

	signer, err := security.NewEphemeralJWTSigner("test-key-1")
	if err != nil {
		t.Fatalf("init signer: %v", err)
	}

	history := memory.NewHistoryStore()
	svc := application.NewService(application.Dependencies{
		Config:   cfg,
		Users:    memory.NewUserStore(),
		History:  history,
		Lockouts: memory.NewLockoutStore(),
		Hasher:   security.NewBcryptHasher(4),
		Signer:   signer,
	})
	return &fixture{service: svc, history: history}
}

func TestRegisterLoginAuthenticateLogout(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	registerRes, err := f.service.Register(ctx, application.RegisterRequest{
		Name:     "Dana",
		Email:    "user@example.com",
		Password: "passw0rd",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if registerRes.Token == "" {
		t.Fatalf("register should return a usable token")
	}
	if registerRes.User.UserID == uuid.Nil {
		t.Fatalf("register returned empty user id")
	}

	profile, err := f.service.Authenticate(ctx, registerRes.Token)
	if err != nil {
		t.Fatalf("authenticate after register failed: %v", err)
	}
	if profile.Email != "user@example.com" {
		t.Fatalf("unexpected profile email %q", profile.Email)
	}

	loginRes, err := f.service.Login(ctx, application.LoginRequest{
		Email:    "user@example.com",
		Password: "passw0rd",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if loginRes.Token == "" {
		t.Fatalf("login token should not be empty")
	}

	if err := f.service.Logout(ctx, loginRes.User.UserID); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := f.service.Authenticate(ctx, loginRes.Token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated after logout, got %v", err)
	}
}

func TestLoginSupersedesPreviousSession(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.service.Register(ctx, application.RegisterRequest{
		Name:     "Dana",
		Email:    "user@example.com",
		Password: "passw0rd",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	first, err := f.service.Login(ctx, application.LoginRequest{
		Email:    "user@example.com",
		Password: "passw0rd",
	})
	if err != nil {
		t.Fatalf("first login failed: %v", err)
	}
	second, err := f.service.Login(ctx, application.LoginRequest{
		Email:    "user@example.com",
		Password: "passw0rd",
	})
	if err != nil {
		t.Fatalf("second login failed: %v", err)
	}

	if _, err := f.service.Authenticate(ctx, first.Token); !errors.Is(err, domain.ErrSessionSuperseded) {
		t.Fatalf("expected first session superseded, got %v", err)
	}
	if _, err := f.service.Authenticate(ctx, second.Token); err != nil {
		t.Fatalf("second session should stay valid: %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.service.Register(ctx, application.RegisterRequest{
		Name:     "Dana",
		Email:    "user@example.com",
		Password: "passw0rd",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// Email matching is case-insensitive.
	_, err := f.service.Register(ctx, application.RegisterRequest{
		Name:     "Other",
		Email:    "User@Example.COM",
		Password: "passw0rd",
	})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict on duplicate email, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  application.RegisterRequest
	}{
		{"short name", application.RegisterRequest{Name: "D", Email: "a@example.com", Password: "passw0rd"}},
		{"bad email", application.RegisterRequest{Name: "Dana", Email: "not-an-email", Password: "passw0rd"}},
		{"weak password", application.RegisterRequest{Name: "Dana", Email: "a@example.com", Password: "short1"}},
		{"digitless password", application.RegisterRequest{Name: "Dana", Email: "a@example.com", Password: "passwords"}},
	}
	for _, tt := range tests {
		if _, err := f.service.Register(ctx, tt.req); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("%s: expected invalid input, got %v", tt.name, err)
		}
	}
}

func TestLoginFailuresTriggerLockout(t *testing.T) {
	t.Parallel()

	f := newFixtureWithConfig(t, application.Config{
		TokenTTL:             time.Hour,
		HistoryCap:           100,
		DefaultPageSize:      20,
		MaxPageSize:          100,
		FailedLoginThreshold: 3,
		LockoutDuration:      15 * time.Minute,
	})
	ctx := context.Background()

	if _, err := f.service.Register(ctx, application.RegisterRequest{
		Name:     "Dana",
		Email:    "user@example.com",
		Password: "passw0rd",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		_, err := f.service.Login(ctx, application.LoginRequest{
			Email:    "user@example.com",
			Password: "wrongpass1",
		})
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected invalid credentials, got %v", i, err)
		}
	}

	// Third failure crosses the threshold.
	if _, err := f.service.Login(ctx, application.LoginRequest{
		Email:    "user@example.com",
		Password: "wrongpass1",
	}); !errors.Is(err, domain.ErrAccountLocked) {
		t.Fatalf("expected lockout on threshold, got %v", err)
	}

	// Even the correct password is refused while locked.
	if _, err := f.service.Login(ctx, application.LoginRequest{
		Email:    "user@example.com",
		Password: "passw0rd",
	}); !errors.Is(err, domain.ErrAccountLocked) {
		t.Fatalf("expected lockout with correct password, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	_, err := f.service.Login(context.Background(), application.LoginRequest{
		Email:    "ghost@example.com",
		Password: "passw0rd",
	})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown email, got %v", err)
	}
}

func TestAuthenticateRejectsGarbageToken(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	if _, err := f.service.Authenticate(context.Background(), "not.a.token"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated for garbage token, got %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	res, err := f.service.Register(ctx, application.RegisterRequest{
		Name:     "Dana",
		Email:    "user@example.com",
		Password: "passw0rd",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	updated, err := f.service.UpdateProfile(ctx, res.User.UserID, application.UpdateProfileRequest{Name: "  Dana R  "})
	if err != nil {
		t.Fatalf("update profile failed: %v", err)
	}
	if updated.Name != "Dana R" {
		t.Fatalf("expected trimmed name, got %q", updated.Name)
	}

	if _, err := f.service.UpdateProfile(ctx, res.User.UserID, application.UpdateProfileRequest{Name: " "}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for blank name, got %v", err)
	}
}

package ports

import (
	"time"

	"github.com/google/uuid"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// AuthClaims is the signed payload of a bearer session token. SessionMarker
// binds the token to one login; verification compares it against the user's
// current marker to detect supersession.
type AuthClaims struct {
	UserID        uuid.UUID `json:"user_id"`
	SessionMarker uuid.UUID `json:"session_marker"`
	IssuedAt      time.Time `json:"issued_at"`
	ExpiresAt     time.Time `json:"expires_at"`
	KeyID         string    `json:"kid"`
}

// TokenSigner signs and verifies bearer session tokens. ParseAndValidate
// reports expiry via domain.ErrTokenExpired; any other failure is structural.
type TokenSigner interface {
	Sign(claims AuthClaims) (string, error)
	ParseAndValidate(token string) (AuthClaims, error)
}

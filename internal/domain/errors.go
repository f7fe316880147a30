package domain

import "errors"

var (
	// ErrNotFound is returned when the requested resource does not exist.
	// Keeping this sentinel in domain lets adapters map it consistently to 404.
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidCredentials hides whether email or password failed.
	// The reason is to prevent account-enumeration side channels.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrConflict signals a uniqueness violation, in practice a taken email.
	ErrConflict = errors.New("conflict")
	// ErrInvalidInput covers malformed or out-of-range fields.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnauthenticated is returned for missing or malformed credentials and
	// for tokens whose session has been explicitly ended.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrTokenExpired distinguishes an expired token from a malformed one so
	// clients can prompt a fresh login instead of treating it as an error.
	ErrTokenExpired = errors.New("token expired")
	// ErrSessionSuperseded means the token is cryptographically valid but its
	// session marker was overwritten by a later login elsewhere.
	ErrSessionSuperseded = errors.New("session superseded by a newer login")
	// ErrForbidden is an ownership violation: valid session, wrong owner.
	ErrForbidden = errors.New("forbidden")
	// ErrAccountLocked signals temporary lockout after repeated failed logins.
	ErrAccountLocked = errors.New("account locked")
)

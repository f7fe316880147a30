package http

import (
	"context"
	"net/http"

	"github.com/netscan/netscan-api/internal/domain"
)

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusOK, "ok")
}

func (h *Handler) readyz(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusOK, "ready")
}

// authMiddleware resolves the bearer token to the acting account profile.
// Token verification and session-supersession checks happen in one place so
// every protected route behaves identically.
func (h *Handler) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := bearerTokenFromHeader(r.Header.Get("Authorization"))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing bearer token")
			return
		}

		profile, err := h.service.Authenticate(r.Context(), raw)
		if err != nil {
			writeMappedError(r.Context(), w, "authenticate", err)
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyProfile, profile)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func profileFromRequest(r *http.Request) (domain.Profile, bool) {
	return profileFromContext(r.Context())
}

package http

import (
	"errors"
	"net/http"

	"github.com/netscan/netscan-api/internal/application"
	"github.com/netscan/netscan-api/internal/domain"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req application.RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "register", err)
		return
	}

	res, err := h.service.Register(r.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			logHTTPOperationError(r.Context(), "register", http.StatusConflict, "EMAIL_TAKEN", "email already registered", err)
			writeError(w, http.StatusConflict, "EMAIL_TAKEN", "email already registered")
			return
		}
		writeMappedError(r.Context(), w, "register", err)
		return
	}
	writeSuccess(w, http.StatusCreated, res)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req application.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "login", err)
		return
	}

	res, err := h.service.Login(r.Context(), req)
	if err != nil {
		writeMappedError(r.Context(), w, "login", err)
		return
	}
	writeSuccess(w, http.StatusOK, res)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFromRequest(r)
	if !ok {
		writeMissingPrincipalError(r.Context(), w, "me")
		return
	}
	writeSuccess(w, http.StatusOK, profile)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFromRequest(r)
	if !ok {
		writeMissingPrincipalError(r.Context(), w, "logout")
		return
	}
	if err := h.service.Logout(r.Context(), profile.UserID); err != nil {
		writeMappedError(r.Context(), w, "logout", err)
		return
	}
	writeMessage(w, http.StatusOK, "logged out")
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFromRequest(r)
	if !ok {
		writeMissingPrincipalError(r.Context(), w, "update_profile")
		return
	}
	var req application.UpdateProfileRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "update_profile", err)
		return
	}

	updated, err := h.service.UpdateProfile(r.Context(), profile.UserID, req)
	if err != nil {
		writeMappedError(r.Context(), w, "update_profile", err)
		return
	}
	writeSuccess(w, http.StatusOK, updated)
}

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/netscan/netscan-api/internal/application"
	"github.com/netscan/netscan-api/internal/domain"
)

func (h *Handler) saveResult(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFromRequest(r)
	if !ok {
		writeMissingPrincipalError(r.Context(), w, "save_result")
		return
	}
	var req application.SaveResultRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "save_result", err)
		return
	}
	if req.IP == "" {
		req.IP = readIP(r)
	}

	saved, err := h.service.SaveResult(r.Context(), profile.UserID, req)
	if err != nil {
		writeMappedError(r.Context(), w, "save_result", err)
		return
	}
	writeSuccess(w, http.StatusCreated, saved)
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFromRequest(r)
	if !ok {
		writeMissingPrincipalError(r.Context(), w, "history")
		return
	}
	q := application.HistoryQuery{
		Page:  parseIntDefault(r.URL.Query().Get("page"), 0),
		Limit: parseIntDefault(r.URL.Query().Get("limit"), 0),
	}

	res, err := h.service.History(r.Context(), profile.UserID, q)
	if err != nil {
		writeMappedError(r.Context(), w, "history", err)
		return
	}
	writeSuccess(w, http.StatusOK, res)
}

func (h *Handler) historyEntry(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFromRequest(r)
	if !ok {
		writeMissingPrincipalError(r.Context(), w, "history_entry")
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeMappedError(r.Context(), w, "history_entry", domain.ErrNotFound)
		return
	}

	record, err := h.service.Entry(r.Context(), profile.UserID, id)
	if err != nil {
		writeMappedError(r.Context(), w, "history_entry", err)
		return
	}
	writeSuccess(w, http.StatusOK, record)
}

func (h *Handler) clearHistory(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFromRequest(r)
	if !ok {
		writeMissingPrincipalError(r.Context(), w, "clear_history")
		return
	}

	n, err := h.service.ClearHistory(r.Context(), profile.UserID)
	if err != nil {
		writeMappedError(r.Context(), w, "clear_history", err)
		return
	}
	writeSuccess(w, http.StatusOK, application.ClearHistoryResponse{Deleted: n})
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	profile, ok := profileFromRequest(r)
	if !ok {
		writeMissingPrincipalError(r.Context(), w, "stats")
		return
	}

	res, err := h.service.Stats(r.Context(), profile.UserID)
	if err != nil {
		writeMappedError(r.Context(), w, "stats", err)
		return
	}
	writeSuccess(w, http.StatusOK, res)
}

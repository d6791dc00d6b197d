package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-otp-auth/internal/application/profile"
	"github.com/go-otp-auth/internal/domain"
	"github.com/go-otp-auth/internal/transport/http/middleware"
)

// LoginHistory is the minimal interface the profile handler needs from the
// login-event store.
type LoginHistory interface {
	ListByEmail(ctx context.Context, email string, limit int32) ([]domain.LoginEvent, error)
}

// ProfileHandler handles the authenticated profile endpoints. The identity is
// always taken from the bearer claims, never from the request body.
type ProfileHandler struct {
	svc    profile.Service
	logins LoginHistory
}

func NewProfileHandler(svc profile.Service, logins LoginHistory) *ProfileHandler {
	return &ProfileHandler{svc: svc, logins: logins}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	v, err := h.svc.Get(r.Context(), claims.Email)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req profile.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	v, err := h.svc.Update(r.Context(), claims.Email, req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *ProfileHandler) Logins(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	events, err := h.logins.ListByEmail(r.Context(), claims.Email, 50)
	if err != nil {
		httpError(w, err)
		return
	}
	if events == nil {
		events = []domain.LoginEvent{}
	}
	writeJSON(w, http.StatusOK, events)
}

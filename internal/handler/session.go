package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gofrs/uuid/v5"

	"medialane/internal/auth"
	"medialane/internal/errs"
	"medialane/internal/model"
)

// SessionService is the session lifecycle surface the handler needs.
type SessionService interface {
	SetupSession(ctx context.Context, userID uuid.UUID, pin string) (*model.SessionKey, error)
	Session(ctx context.Context, userID uuid.UUID) (*model.SessionKey, error)
	HasActiveSession(ctx context.Context, userID uuid.UUID) bool
	ClearSession(ctx context.Context, userID uuid.UUID) error
}

// SessionHandler serves the session key lifecycle.
type SessionHandler struct {
	svc SessionService
}

// NewSessionHandler creates a session handler.
func NewSessionHandler(svc SessionService) *SessionHandler {
	return &SessionHandler{svc: svc}
}

// Setup handles POST /v1/session
// @Summary      Set up session key
// @Description  Generates and registers a time-boxed session signing key
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        request  body      model.SessionSetupRequest  true  "wallet PIN"
// @Success      201      {object}  model.SessionStatusResponse
// @Security     BearerAuth
// @Router       /v1/session [post]
func (h *SessionHandler) Setup(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		writeBadRequest(w, "missing user")
		return
	}

	var req model.SessionSetupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.Pin == "" {
		writeBadRequest(w, "pin is required")
		return
	}

	sk, err := h.svc.SetupSession(r.Context(), userID, req.Pin)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, model.SessionStatusResponse{
		Active:     true,
		ValidUntil: sk.ValidUntil,
	})
}

// Status handles GET /v1/session
// @Summary      Session status
// @Description  Reports whether an unexpired session key exists
// @Tags         session
// @Produce      json
// @Success      200  {object}  model.SessionStatusResponse
// @Security     BearerAuth
// @Router       /v1/session [get]
func (h *SessionHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		writeBadRequest(w, "missing user")
		return
	}

	resp := model.SessionStatusResponse{Active: h.svc.HasActiveSession(r.Context(), userID)}
	if resp.Active {
		if sk, err := h.svc.Session(r.Context(), userID); err == nil {
			resp.ValidUntil = sk.ValidUntil
		} else if !errors.Is(err, errs.ErrNotFound) {
			writeError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Clear handles DELETE /v1/session
// @Summary      Clear session
// @Description  Forgets the stored session key
// @Tags         session
// @Success      204
// @Security     BearerAuth
// @Router       /v1/session [delete]
func (h *SessionHandler) Clear(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		writeBadRequest(w, "missing user")
		return
	}
	if err := h.svc.ClearSession(r.Context(), userID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

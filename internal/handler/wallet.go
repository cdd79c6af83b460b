package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gofrs/uuid/v5"

	"medialane/internal/auth"
	"medialane/internal/model"
)

// WalletService is the wallet surface the handler needs.
type WalletService interface {
	CreateWallet(ctx context.Context, userID uuid.UUID, pin string) (*model.CreateWalletResponse, error)
	Wallet(ctx context.Context, userID uuid.UUID) (*model.Wallet, error)
}

// WalletHandler serves wallet onboarding and lookup.
type WalletHandler struct {
	svc WalletService
}

// NewWalletHandler creates a wallet handler.
func NewWalletHandler(svc WalletService) *WalletHandler {
	return &WalletHandler{svc: svc}
}

// Create handles POST /v1/wallet
// @Summary      Create wallet
// @Description  Generates a keypair, deploys the account gaslessly and returns the address with a QR code
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.CreateWalletRequest  true  "wallet PIN"
// @Success      201      {object}  model.CreateWalletResponse
// @Security     BearerAuth
// @Router       /v1/wallet [post]
func (h *WalletHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		writeBadRequest(w, "missing user")
		return
	}

	var req model.CreateWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.Pin == "" {
		writeBadRequest(w, "pin is required")
		return
	}

	resp, err := h.svc.CreateWallet(r.Context(), userID, req.Pin)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// Get handles GET /v1/wallet
// @Summary      Get wallet
// @Description  Returns the caller's wallet address
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.CreateWalletResponse
// @Security     BearerAuth
// @Router       /v1/wallet [get]
func (h *WalletHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		writeBadRequest(w, "missing user")
		return
	}

	wallet, err := h.svc.Wallet(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"address": wallet.PublicKey})
}

package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gofrs/uuid/v5"

	"medialane/internal/auth"
	"medialane/internal/model"
)

// AssetService creates new on-chain assets.
type AssetService interface {
	CreateAsset(ctx context.Context, userID uuid.UUID, req model.CreateAssetRequest) (*model.CreateAssetResponse, error)
}

// AssetsHandler serves asset creation.
type AssetsHandler struct {
	svc AssetService
}

// NewAssetsHandler creates an assets handler.
func NewAssetsHandler(svc AssetService) *AssetsHandler {
	return &AssetsHandler{svc: svc}
}

// Create handles POST /v1/assets
// @Summary      Create asset
// @Description  Pins image and metadata to IPFS, then mints the token to the caller's wallet
// @Tags         assets
// @Accept       json
// @Produce      json
// @Param        request  body      model.CreateAssetRequest  true  "asset"
// @Success      201      {object}  model.CreateAssetResponse
// @Security     BearerAuth
// @Router       /v1/assets [post]
func (h *AssetsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		writeBadRequest(w, "missing user")
		return
	}

	var req model.CreateAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.Name == "" || req.Pin == "" {
		writeBadRequest(w, "name and pin are required")
		return
	}

	resp, err := h.svc.CreateAsset(r.Context(), userID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

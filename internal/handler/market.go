package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gofrs/uuid/v5"

	"medialane/internal/auth"
	"medialane/internal/marketplace"
	"medialane/internal/model"
)

// MarketService is the signed-action surface the handler needs.
type MarketService interface {
	CreateListing(ctx context.Context, userID uuid.UUID, req model.ListingRequest) (*marketplace.OrderResult, error)
	MakeOffer(ctx context.Context, userID uuid.UUID, req model.ListingRequest) (*marketplace.OrderResult, error)
	FulfillOrder(ctx context.Context, userID uuid.UUID, req model.FulfillRequest) (*marketplace.OrderResult, error)
	CancelOrder(ctx context.Context, userID uuid.UUID, req model.CancelRequest) (*marketplace.OrderResult, error)
}

// TxStatusSource reports the caller's current transaction state.
type TxStatusSource interface {
	Status(userID uuid.UUID) model.TxStatus
}

// MarketHandler serves the signed marketplace actions.
type MarketHandler struct {
	svc    MarketService
	status TxStatusSource
}

// NewMarketHandler creates a market handler.
func NewMarketHandler(svc MarketService, status TxStatusSource) *MarketHandler {
	return &MarketHandler{svc: svc, status: status}
}

// CreateListing handles POST /v1/market/listings
// @Summary      Create listing
// @Description  Signs and registers a sell order for an owned token
// @Tags         market
// @Accept       json
// @Produce      json
// @Param        request  body      model.ListingRequest  true  "listing"
// @Success      200      {object}  marketplace.OrderResult
// @Security     BearerAuth
// @Router       /v1/market/listings [post]
func (h *MarketHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	h.orderAction(w, r, h.svc.CreateListing)
}

// MakeOffer handles POST /v1/market/offers
// @Summary      Make offer
// @Description  Signs and registers a bid for a listed token
// @Tags         market
// @Accept       json
// @Produce      json
// @Param        request  body      model.ListingRequest  true  "offer"
// @Success      200      {object}  marketplace.OrderResult
// @Security     BearerAuth
// @Router       /v1/market/offers [post]
func (h *MarketHandler) MakeOffer(w http.ResponseWriter, r *http.Request) {
	h.orderAction(w, r, h.svc.MakeOffer)
}

func (h *MarketHandler) orderAction(
	w http.ResponseWriter,
	r *http.Request,
	action func(context.Context, uuid.UUID, model.ListingRequest) (*marketplace.OrderResult, error),
) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		writeBadRequest(w, "missing user")
		return
	}

	var req model.ListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	res, err := action(r.Context(), userID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Fulfill handles POST /v1/market/orders/{hash}/fulfill
// @Summary      Fulfill order
// @Description  Signs a fulfillment for an existing order and executes it
// @Tags         market
// @Accept       json
// @Produce      json
// @Param        hash     path      string               true  "order hash"
// @Param        request  body      model.FulfillRequest true  "fulfillment"
// @Success      200      {object}  marketplace.OrderResult
// @Security     BearerAuth
// @Router       /v1/market/orders/{hash}/fulfill [post]
func (h *MarketHandler) Fulfill(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		writeBadRequest(w, "missing user")
		return
	}

	var req model.FulfillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	req.OrderHash = r.PathValue("hash")

	res, err := h.svc.FulfillOrder(r.Context(), userID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Cancel handles POST /v1/market/orders/{hash}/cancel
// @Summary      Cancel order
// @Description  Signs a cancellation for one of the caller's orders and executes it
// @Tags         market
// @Accept       json
// @Produce      json
// @Param        hash     path      string              true  "order hash"
// @Param        request  body      model.CancelRequest true  "cancellation"
// @Success      200      {object}  marketplace.OrderResult
// @Security     BearerAuth
// @Router       /v1/market/orders/{hash}/cancel [post]
func (h *MarketHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		writeBadRequest(w, "missing user")
		return
	}

	var req model.CancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	req.OrderHash = r.PathValue("hash")

	res, err := h.svc.CancelOrder(r.Context(), userID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Status handles GET /v1/market/status
// @Summary      Transaction status
// @Description  Reports the caller's current transaction state
// @Tags         market
// @Produce      json
// @Success      200  {object}  map[string]string
// @Security     BearerAuth
// @Router       /v1/market/status [get]
func (h *MarketHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		writeBadRequest(w, "missing user")
		return
	}
	writeJSON(w, http.StatusOK, map[string]model.TxStatus{"status": h.status.Status(userID)})
}

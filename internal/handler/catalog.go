package handler

import (
	"net/http"
	"strconv"

	"medialane/internal/indexer"
)

// CatalogHandler proxies indexer reads. These routes are public; nothing
// here touches key material.
type CatalogHandler struct {
	idx *indexer.Client
}

// NewCatalogHandler creates a catalog handler.
func NewCatalogHandler(idx *indexer.Client) *CatalogHandler {
	return &CatalogHandler{idx: idx}
}

// Orders handles GET /v1/orders
// @Summary      List orders
// @Tags         catalog
// @Produce      json
// @Param        page   query     int  false  "page"
// @Param        limit  query     int  false  "page size"
// @Success      200    {object}  indexer.Page[indexer.Order]
// @Router       /v1/orders [get]
func (h *CatalogHandler) Orders(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)
	out, err := h.idx.Orders(r.Context(), page, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Order handles GET /v1/orders/{hash}
// @Summary      Get order
// @Tags         catalog
// @Produce      json
// @Param        hash  path      string  true  "order hash"
// @Success      200   {object}  indexer.Order
// @Router       /v1/orders/{hash} [get]
func (h *CatalogHandler) Order(w http.ResponseWriter, r *http.Request) {
	out, err := h.idx.Order(r.Context(), r.PathValue("hash"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Listings handles GET /v1/listings
// @Summary      Listings for a token
// @Tags         catalog
// @Produce      json
// @Param        contract  query     string  true  "NFT contract"
// @Param        tokenId   query     string  true  "token id"
// @Success      200       {array}   indexer.Order
// @Router       /v1/listings [get]
func (h *CatalogHandler) Listings(w http.ResponseWriter, r *http.Request) {
	contract := r.URL.Query().Get("contract")
	tokenID := r.URL.Query().Get("tokenId")
	if contract == "" || tokenID == "" {
		writeBadRequest(w, "contract and tokenId are required")
		return
	}
	out, err := h.idx.ListingsForToken(r.Context(), contract, tokenID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// UserOrders handles GET /v1/users/{address}/orders
// @Summary      Orders by user
// @Tags         catalog
// @Produce      json
// @Param        address  path      string  true  "account address"
// @Success      200      {array}   indexer.Order
// @Router       /v1/users/{address}/orders [get]
func (h *CatalogHandler) UserOrders(w http.ResponseWriter, r *http.Request) {
	out, err := h.idx.OrdersByUser(r.Context(), r.PathValue("address"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// UserTokens handles GET /v1/users/{address}/tokens
// @Summary      Tokens by owner
// @Tags         catalog
// @Produce      json
// @Param        address  path      string  true  "account address"
// @Success      200      {array}   indexer.Token
// @Router       /v1/users/{address}/tokens [get]
func (h *CatalogHandler) UserTokens(w http.ResponseWriter, r *http.Request) {
	out, err := h.idx.TokensByOwner(r.Context(), r.PathValue("address"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Token handles GET /v1/tokens/{contract}/{id}
// @Summary      Get token
// @Tags         catalog
// @Produce      json
// @Param        contract  path      string  true  "NFT contract"
// @Param        id        path      string  true  "token id"
// @Success      200       {object}  indexer.Token
// @Router       /v1/tokens/{contract}/{id} [get]
func (h *CatalogHandler) Token(w http.ResponseWriter, r *http.Request) {
	out, err := h.idx.Token(r.Context(), r.PathValue("contract"), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Collections handles GET /v1/collections
// @Summary      List collections
// @Tags         catalog
// @Produce      json
// @Param        page   query     int  false  "page"
// @Param        limit  query     int  false  "page size"
// @Success      200    {object}  indexer.Page[indexer.Collection]
// @Router       /v1/collections [get]
func (h *CatalogHandler) Collections(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)
	out, err := h.idx.Collections(r.Context(), page, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Collection handles GET /v1/collections/{address}
// @Summary      Get collection
// @Tags         catalog
// @Produce      json
// @Param        address  path      string  true  "contract address"
// @Success      200      {object}  indexer.Collection
// @Router       /v1/collections/{address} [get]
func (h *CatalogHandler) Collection(w http.ResponseWriter, r *http.Request) {
	out, err := h.idx.Collection(r.Context(), r.PathValue("address"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func pagination(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	return page, limit
}

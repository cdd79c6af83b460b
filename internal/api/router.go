// Package api assembles the HTTP routes.
package api

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"medialane/internal/auth"
	"medialane/internal/handler"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Wallet  *handler.WalletHandler
	Session *handler.SessionHandler
	Market  *handler.MarketHandler
	Assets  *handler.AssetsHandler
	Catalog *handler.CatalogHandler
}

// NewRouter mounts all routes. Signed actions sit behind the auth
// middleware; catalog reads are public.
func NewRouter(h Handlers, authMW *auth.Middleware) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/wallet", authMW.Wrap(h.Wallet.Create))
	mux.HandleFunc("GET /v1/wallet", authMW.Wrap(h.Wallet.Get))

	mux.HandleFunc("POST /v1/session", authMW.Wrap(h.Session.Setup))
	mux.HandleFunc("GET /v1/session", authMW.Wrap(h.Session.Status))
	mux.HandleFunc("DELETE /v1/session", authMW.Wrap(h.Session.Clear))

	mux.HandleFunc("POST /v1/market/listings", authMW.Wrap(h.Market.CreateListing))
	mux.HandleFunc("POST /v1/market/offers", authMW.Wrap(h.Market.MakeOffer))
	mux.HandleFunc("POST /v1/market/orders/{hash}/fulfill", authMW.Wrap(h.Market.Fulfill))
	mux.HandleFunc("POST /v1/market/orders/{hash}/cancel", authMW.Wrap(h.Market.Cancel))
	mux.HandleFunc("GET /v1/market/status", authMW.Wrap(h.Market.Status))

	mux.HandleFunc("POST /v1/assets", authMW.Wrap(h.Assets.Create))

	mux.HandleFunc("GET /v1/orders", h.Catalog.Orders)
	mux.HandleFunc("GET /v1/orders/{hash}", h.Catalog.Order)
	mux.HandleFunc("GET /v1/listings", h.Catalog.Listings)
	mux.HandleFunc("GET /v1/users/{address}/orders", h.Catalog.UserOrders)
	mux.HandleFunc("GET /v1/users/{address}/tokens", h.Catalog.UserTokens)
	mux.HandleFunc("GET /v1/tokens/{contract}/{id}", h.Catalog.Token)
	mux.HandleFunc("GET /v1/collections", h.Catalog.Collections)
	mux.HandleFunc("GET /v1/collections/{address}", h.Catalog.Collection)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

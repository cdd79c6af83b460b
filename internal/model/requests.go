package model

import "fmt"

// MinListingDurationSeconds is the policy floor for order durations (one day).
const MinListingDurationSeconds = 86400

// CreateWalletRequest for POST /wallet
type CreateWalletRequest struct {
	Pin string `json:"pin"`
}

// CreateWalletResponse returns the new wallet address and a QR code of it.
type CreateWalletResponse struct {
	Address string `json:"address"`
	QR      string `json:"qr"` // base64 PNG
	TxHash  string `json:"txHash,omitempty"`
}

// SessionSetupRequest for POST /session
type SessionSetupRequest struct {
	Pin string `json:"pin"`
}

// SessionStatusResponse for GET /session
type SessionStatusResponse struct {
	Active     bool  `json:"active"`
	ValidUntil int64 `json:"validUntil,omitempty"`
}

// ListingRequest for POST /market/listings (also used for offers).
type ListingRequest struct {
	AssetContract   string `json:"assetContract"`
	TokenID         string `json:"tokenId"`
	Price           string `json:"price"` // human-readable, e.g. "10.5"
	CurrencySymbol  string `json:"currencySymbol"`
	DurationSeconds int64  `json:"durationSeconds"`
	Pin             string `json:"pin"`
}

// Validate checks the request shape before any network call is made.
func (r *ListingRequest) Validate() error {
	if r.AssetContract == "" || r.TokenID == "" {
		return fmt.Errorf("assetContract and tokenId are required")
	}
	if r.Price == "" {
		return fmt.Errorf("price is required")
	}
	if r.DurationSeconds < MinListingDurationSeconds {
		return fmt.Errorf("durationSeconds must be at least %d (one day)", MinListingDurationSeconds)
	}
	if r.Pin == "" {
		return fmt.Errorf("pin is required")
	}
	return nil
}

// FulfillRequest for POST /market/orders/{hash}/fulfill
type FulfillRequest struct {
	OrderHash           string `json:"orderHash"`
	ConsiderationToken  string `json:"considerationToken"`
	ConsiderationAmount string `json:"considerationAmount"` // base units
	NftContract         string `json:"nftContract"`
	NftTokenID          string `json:"nftTokenId"`
	Pin                 string `json:"pin"`
}

// CancelRequest for POST /market/orders/{hash}/cancel
type CancelRequest struct {
	OrderHash string `json:"orderHash"`
	Pin       string `json:"pin"`
}

// CreateAssetRequest for POST /assets: pins metadata and mints the token.
type CreateAssetRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IPType      string `json:"ipType"`
	License     string `json:"license"`
	ImageBase64 string `json:"imageBase64"`
	Pin         string `json:"pin"`
}

// CreateAssetResponse reports the pinned metadata URI and the mint transaction.
type CreateAssetResponse struct {
	URI      string `json:"uri"`
	ImageURI string `json:"imageUri,omitempty"`
	TxHash   string `json:"txHash"`
}

package model

// ItemType of an order side.
const (
	ItemTypeERC721 = "ERC721"
	ItemTypeERC20  = "ERC20"
)

// OrderItem is one side of a canonical order. All numeric fields are
// decimal-string integers so the structure stays hash-stable.
type OrderItem struct {
	ItemType             string `json:"item_type"`
	Token                string `json:"token"`
	IdentifierOrCriteria string `json:"identifier_or_criteria"`
	StartAmount          string `json:"start_amount"`
	EndAmount            string `json:"end_amount"`
}

// ConsiderationItem mirrors OrderItem plus the recipient of the consideration.
type ConsiderationItem struct {
	OrderItem
	Recipient string `json:"recipient"`
}

// Order is the canonical, signable representation of a listing or an offer.
// Exactly one side is the NFT (ERC721, amount 1); the other side is the
// fungible consideration. Orders are immutable once signed.
type Order struct {
	Offerer       string            `json:"offerer"`
	Offer         OrderItem         `json:"offer"`
	Consideration ConsiderationItem `json:"consideration"`
	StartTime     string            `json:"start_time"`
	EndTime       string            `json:"end_time"`
	Salt          string            `json:"salt"`
	Nonce         string            `json:"nonce"`
}

// FulfillmentParams binds an order hash, the fulfiller and a fresh nonce.
// Single-use per nonce value.
type FulfillmentParams struct {
	OrderHash string `json:"order_hash"`
	Fulfiller string `json:"fulfiller"`
	Nonce     string `json:"nonce"`
}

// CancellationParams binds an order hash, the offerer and a fresh nonce.
type CancellationParams struct {
	OrderHash string `json:"order_hash"`
	Offerer   string `json:"offerer"`
	Nonce     string `json:"nonce"`
}

// Package indexer is a read-only client for the marketplace indexer API.
// Everything written on chain through the executor comes back out of here.
package indexer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"medialane/internal/errs"
)

// Order is an indexed marketplace order.
type Order struct {
	Hash          string `json:"hash"`
	Offerer       string `json:"offerer"`
	Side          string `json:"side"` // sell | bid
	Status        string `json:"status"`
	AssetContract string `json:"assetContract"`
	TokenID       string `json:"tokenId"`
	Currency      string `json:"currency"`
	Price         string `json:"price"` // base units
	StartTime     int64  `json:"startTime"`
	EndTime       int64  `json:"endTime"`
}

// Token is an indexed NFT.
type Token struct {
	Contract string `json:"contract"`
	TokenID  string `json:"tokenId"`
	Owner    string `json:"owner"`
	URI      string `json:"uri"`
	Name     string `json:"name"`
}

// Collection is an indexed NFT contract.
type Collection struct {
	Address   string `json:"address"`
	Name      string `json:"name"`
	Symbol    string `json:"symbol"`
	ItemCount int    `json:"itemCount"`
}

// Page wraps a paginated listing.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Client calls the indexer over HTTP.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates an indexer client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Orders lists open orders, newest first.
func (c *Client) Orders(ctx context.Context, page, limit int) (*Page[Order], error) {
	var out Page[Order]
	if err := c.get(ctx, "/v1/orders", pageQuery(page, limit), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Order fetches a single order by its typed-data hash.
func (c *Client) Order(ctx context.Context, hash string) (*Order, error) {
	var out Order
	if err := c.get(ctx, "/v1/orders/"+url.PathEscape(hash), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListingsForToken lists active sell orders for one token.
func (c *Client) ListingsForToken(ctx context.Context, contract, tokenID string) ([]Order, error) {
	var out Page[Order]
	q := url.Values{"contract": {contract}, "tokenId": {tokenID}}
	if err := c.get(ctx, "/v1/listings", q, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// OrdersByUser lists a user's orders, both sides.
func (c *Client) OrdersByUser(ctx context.Context, address string) ([]Order, error) {
	var out Page[Order]
	if err := c.get(ctx, "/v1/users/"+url.PathEscape(address)+"/orders", nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// TokensByOwner lists the NFTs an address holds.
func (c *Client) TokensByOwner(ctx context.Context, address string) ([]Token, error) {
	var out Page[Token]
	if err := c.get(ctx, "/v1/users/"+url.PathEscape(address)+"/tokens", nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// Token fetches one NFT.
func (c *Client) Token(ctx context.Context, contract, tokenID string) (*Token, error) {
	var out Token
	path := "/v1/tokens/" + url.PathEscape(contract) + "/" + url.PathEscape(tokenID)
	if err := c.get(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Collections lists indexed collections.
func (c *Client) Collections(ctx context.Context, page, limit int) (*Page[Collection], error) {
	var out Page[Collection]
	if err := c.get(ctx, "/v1/collections", pageQuery(page, limit), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Collection fetches one collection by contract address.
func (c *Client) Collection(ctx context.Context, address string) (*Collection, error) {
	var out Collection
	if err := c.get(ctx, "/v1/collections/"+url.PathEscape(address), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func pageQuery(page, limit int) url.Values {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	return url.Values{
		"page":  {strconv.Itoa(page)},
		"limit": {strconv.Itoa(limit)},
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("indexer request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errs.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("indexer returned %d: %s", resp.StatusCode, raw)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode indexer response: %w", err)
	}
	return nil
}

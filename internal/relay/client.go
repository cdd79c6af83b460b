// Package relay is a client for the gasless transaction relay. The relay
// decrypts the wallet key with the supplied encrypt key, signs, pays the
// network fee and broadcasts; we only ever see a transaction hash back.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"medialane/internal/model"
)

// Wallet is the key material envelope the relay expects.
type Wallet struct {
	PublicKey           string `json:"publicKey"`
	EncryptedPrivateKey string `json:"encryptedPrivateKey"`
}

// SessionConfig describes a session key registration.
type SessionConfig struct {
	SessionPublicKey   string   `json:"sessionPublicKey"`
	ValidUntil         int64    `json:"validUntil"`
	MaxCalls           int      `json:"maxCalls"`
	AllowedEntrypoints []string `json:"allowedEntrypoints"`
}

// ExecuteRequest is the relay's call-bundle payload.
type ExecuteRequest struct {
	EncryptKey      string       `json:"encryptKey"`
	Wallet          Wallet       `json:"wallet"`
	ContractAddress string       `json:"contractAddress"`
	Calls           []model.Call `json:"calls"`
}

// txResponse is the single response schema we accept from the relay.
// Shape drift is a contract break, not a runtime branch.
type txResponse struct {
	TransactionHash string `json:"transactionHash"`
}

type deployResponse struct {
	AccountAddress  string `json:"accountAddress"`
	TransactionHash string `json:"transactionHash"`
}

// Client talks to the relay over HTTP with per-request bearer tokens.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a relay client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// DeployAccount asks the relay to deploy an account contract for the given
// public key, fee-sponsored. Returns the account address and the deploy
// transaction hash.
func (c *Client) DeployAccount(ctx context.Context, bearer, publicKey string) (account, txHash string, err error) {
	var resp deployResponse
	payload := map[string]string{"publicKey": publicKey}
	if err := c.post(ctx, bearer, "/v1/wallets", payload, &resp); err != nil {
		return "", "", fmt.Errorf("failed to deploy account: %w", err)
	}
	if resp.AccountAddress == "" {
		return "", "", fmt.Errorf("relay returned no account address")
	}
	return resp.AccountAddress, resp.TransactionHash, nil
}

// AddSessionKey registers a session public key against the wallet contract.
// The owner key authorizes this call, so it still needs the owner's PIN.
func (c *Client) AddSessionKey(ctx context.Context, bearer, encryptKey string, wallet Wallet, cfg SessionConfig) (string, error) {
	payload := map[string]any{
		"encryptKey":    encryptKey,
		"wallet":        wallet,
		"sessionConfig": cfg,
	}
	var resp txResponse
	if err := c.post(ctx, bearer, "/v1/session-keys", payload, &resp); err != nil {
		return "", fmt.Errorf("failed to register session key: %w", err)
	}
	return resp.TransactionHash, nil
}

// Execute submits a call bundle. The returned string is the transaction
// hash as reported by the relay; the caller validates its shape.
func (c *Client) Execute(ctx context.Context, bearer string, req ExecuteRequest) (string, error) {
	var resp txResponse
	if err := c.post(ctx, bearer, "/v1/transactions", req, &resp); err != nil {
		return "", fmt.Errorf("failed to submit transaction: %w", err)
	}
	return resp.TransactionHash, nil
}

func (c *Client) post(ctx context.Context, bearer, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+bearer)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("relay request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("relay returned status %d: %s", resp.StatusCode, string(msg))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode relay response: %w", err)
	}
	return nil
}

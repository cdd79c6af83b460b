// Package pinning is a client for a Pinata-compatible IPFS pinning API.
// Asset images and ERC-721 metadata documents are pinned here before the
// metadata URI goes on chain.
package pinning

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// Client pins content through a hosted pinning service.
type Client struct {
	baseURL string
	jwt     string
	gateway string
	client  *http.Client
}

// NewClient creates a pinning client. gateway is the public HTTP gateway
// used to resolve pinned CIDs.
func NewClient(baseURL, jwt, gateway string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		jwt:     jwt,
		gateway: strings.TrimRight(gateway, "/"),
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type pinResponse struct {
	IpfsHash string `json:"IpfsHash"`
}

// PinImage uploads raw image bytes and returns an ipfs:// URI.
func (c *Client) PinImage(ctx context.Context, name string, data []byte) (string, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", name)
	if err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	meta, _ := json.Marshal(map[string]string{"name": name})
	if err := w.WriteField("pinataMetadata", string(meta)); err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}

	return c.pin(ctx, "/pinning/pinFileToIPFS", &body, w.FormDataContentType())
}

// PinJSON pins a JSON document and returns an ipfs:// URI.
func (c *Client) PinJSON(ctx context.Context, name string, payload any) (string, error) {
	body, err := json.Marshal(map[string]any{
		"pinataMetadata": map[string]string{"name": name},
		"pinataContent":  payload,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal metadata: %w", err)
	}
	return c.pin(ctx, "/pinning/pinJSONToIPFS", bytes.NewReader(body), "application/json")
}

// GatewayURL resolves an ipfs:// URI against the configured gateway.
func (c *Client) GatewayURL(uri string) string {
	return c.gateway + "/ipfs/" + strings.TrimPrefix(uri, "ipfs://")
}

func (c *Client) pin(ctx context.Context, path string, body io.Reader, contentType string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+c.jwt)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("pinning request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read pinning response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("pinning service returned %d: %s", resp.StatusCode, raw)
	}

	var out pinResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("failed to decode pinning response: %w", err)
	}
	if out.IpfsHash == "" {
		return "", fmt.Errorf("pinning service returned no CID")
	}
	return "ipfs://" + out.IpfsHash, nil
}

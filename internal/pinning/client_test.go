package pinning

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPinJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pinning/pinJSONToIPFS", r.URL.Path)
		assert.Equal(t, "Bearer test-jwt", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Contains(t, body, "pinataContent")

		json.NewEncoder(w).Encode(map[string]string{"IpfsHash": "QmTestHash"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-jwt", "https://gateway.example")
	uri, err := c.PinJSON(context.Background(), "meta", map[string]string{"name": "Track 01"})
	require.NoError(t, err)
	assert.Equal(t, "ipfs://QmTestHash", uri)
}

func TestPinImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pinning/pinFileToIPFS", r.URL.Path)
		assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, _, err := r.FormFile("file")
		require.NoError(t, err)
		data, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data)

		json.NewEncoder(w).Encode(map[string]string{"IpfsHash": "QmImageHash"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-jwt", "https://gateway.example")
	uri, err := c.PinImage(context.Background(), "cover.png", []byte{0x89, 'P', 'N', 'G'})
	require.NoError(t, err)
	assert.Equal(t, "ipfs://QmImageHash", uri)
}

func TestPinServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-jwt", "https://gateway.example")
	_, err := c.PinJSON(context.Background(), "meta", map[string]string{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestPinMissingCID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-jwt", "https://gateway.example")
	_, err := c.PinJSON(context.Background(), "meta", map[string]string{})
	require.Error(t, err)
}

func TestGatewayURL(t *testing.T) {
	c := NewClient("https://api.example", "jwt", "https://gateway.example/")
	assert.Equal(t, "https://gateway.example/ipfs/QmX", c.GatewayURL("ipfs://QmX"))
}

package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medialane/internal/errs"
)

func TestToken(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/users/"+userID.String()+"/tokens", r.URL.Path)
		assert.Equal(t, "chipipay", r.URL.Query().Get("template"))
		json.NewEncoder(w).Encode(map[string]string{"token": "bearer-abc"})
	}))
	defer srv.Close()

	token, err := NewClient(srv.URL, "chipipay").Token(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "bearer-abc", token)
}

func TestTokenUnauthorized(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}))
		_, err := NewClient(srv.URL, "chipipay").Token(context.Background(), uuid.Must(uuid.NewV4()))
		require.ErrorIs(t, err, errs.ErrNotAuthenticated, "status %d", status)
		srv.Close()
	}
}

func TestTokenEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"token": ""})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "chipipay").Token(context.Background(), uuid.Must(uuid.NewV4()))
	require.ErrorIs(t, err, errs.ErrNotAuthenticated)
}

func TestTokenServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "chipipay").Token(context.Background(), uuid.Must(uuid.NewV4()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

// Package handler contains the HTTP surface of the service. Handlers
// decode, delegate and encode; all behavior lives in the services below.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"medialane/internal/errs"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps service errors onto HTTP statuses and a JSON envelope.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrWalletNotFound), errors.Is(err, errs.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrNotAuthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, errs.ErrWrongPin):
		status = http.StatusForbidden
	case errors.Is(err, errs.ErrTxInProgress):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrUnsupportedCurrency), errors.Is(err, errs.ErrNoSigningKey):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrInvalidRelayResponse):
		status = http.StatusBadGateway
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}

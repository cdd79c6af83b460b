// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

var (
	// ErrWalletNotFound indicates the user has no wallet record yet.
	ErrWalletNotFound = errors.New("wallet not found")

	// ErrNoSigningKey indicates neither a session key nor an owner key is available.
	ErrNoSigningKey = errors.New("no signing key available")

	// ErrWrongPin indicates key decryption produced no plaintext (bad PIN).
	ErrWrongPin = errors.New("incorrect pin")

	// ErrNotAuthenticated indicates a missing or unusable bearer credential.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrRegistration indicates the on-chain session key registration failed.
	ErrRegistration = errors.New("session key registration failed")

	// ErrUnsupportedCurrency indicates the currency symbol resolves to no known token.
	ErrUnsupportedCurrency = errors.New("unsupported currency")

	// ErrTxInProgress indicates a second submission while one is still in flight.
	ErrTxInProgress = errors.New("a transaction is already in progress")

	// ErrInvalidRelayResponse indicates the relay returned a malformed transaction hash.
	ErrInvalidRelayResponse = errors.New("invalid relay response")

	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")
)

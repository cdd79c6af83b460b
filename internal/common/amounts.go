// Package common holds amount conversion helpers shared across layers.
package common

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// ToBaseUnits converts a human-readable decimal amount to on-chain base
// units for a token with the given decimal precision. Rounding is to the
// nearest integer, half up: sub-unit precision is meaningless on-chain.
func ToBaseUnits(amount string, decimals int) (*big.Int, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	if d.Sign() <= 0 {
		return nil, fmt.Errorf("amount must be positive, got %q", amount)
	}
	return d.Shift(int32(decimals)).Round(0).BigInt(), nil
}

// FromBaseUnits formats on-chain base units as a human-readable decimal string.
func FromBaseUnits(v *big.Int, decimals int) string {
	return decimal.NewFromBigInt(v, -int32(decimals)).String()
}

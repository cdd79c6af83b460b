// Package starknet wraps chain access, STARK-curve signing and felt
// encoding for the marketplace.
package starknet

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/NethermindEth/starknet.go/utils"
)

// NormalizeAddress lowercases a Starknet address and left-pads it to the
// canonical 0x + 64 hex digit form. Orders built from differently padded
// inputs must still hash identically.
func NormalizeAddress(addr string) string {
	s := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(addr), "0x"))
	if len(s) < 64 {
		s = strings.Repeat("0", 64-len(s)) + s
	}
	return "0x" + s
}

// EncodeShortString encodes an ASCII string (max 31 chars) as a felt hex
// literal, the Cairo short-string convention.
func EncodeShortString(s string) (string, error) {
	if len(s) > 31 {
		return "", fmt.Errorf("short string too long: %q", s)
	}
	return "0x" + new(big.Int).SetBytes([]byte(s)).Text(16), nil
}

// EncodeLongString encodes a string of any length as a count-prefixed list
// of short-string felts, 31 characters per word.
func EncodeLongString(s string) []string {
	var words []string
	for len(s) > 0 {
		n := len(s)
		if n > 31 {
			n = 31
		}
		w, _ := EncodeShortString(s[:n])
		words = append(words, w)
		s = s[n:]
	}
	return append([]string{strconv.Itoa(len(words))}, words...)
}

// SplitUint256 splits a non-negative integer into (low, high) 128-bit
// decimal-string halves, the calldata layout of a Cairo u256.
func SplitUint256(v *big.Int) (low, high string) {
	mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	l := new(big.Int).And(v, mask)
	h := new(big.Int).Rsh(v, 128)
	return l.String(), h.String()
}

// WordToFelt parses a calldata word: hex if 0x-prefixed, decimal otherwise.
func WordToFelt(word string) (*felt.Felt, error) {
	if strings.HasPrefix(word, "0x") || strings.HasPrefix(word, "0X") {
		f, err := utils.HexToFelt(word)
		if err != nil {
			return nil, fmt.Errorf("invalid hex word %q: %w", word, err)
		}
		return f, nil
	}
	n, ok := new(big.Int).SetString(word, 10)
	if !ok {
		return nil, fmt.Errorf("invalid decimal word %q", word)
	}
	return utils.BigIntToFelt(n), nil
}

// WordsToFelts parses a full calldata word list.
func WordsToFelts(words []string) ([]*felt.Felt, error) {
	out := make([]*felt.Felt, 0, len(words))
	for _, w := range words {
		f, err := WordToFelt(w)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

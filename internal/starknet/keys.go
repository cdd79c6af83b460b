package starknet

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/NethermindEth/starknet.go/curve"
)

// Keypair is a STARK-curve keypair. PrivateKey and PublicKey are 0x hex.
type Keypair struct {
	PrivateKey string
	PublicKey  string
}

// GenerateKeypair creates a fresh STARK-curve keypair.
func GenerateKeypair() (Keypair, error) {
	priv, err := curve.Curve.GetRandomPrivateKey()
	if err != nil {
		return Keypair{}, fmt.Errorf("failed to generate private key: %w", err)
	}
	x, _, err := curve.Curve.PrivateToPoint(priv)
	if err != nil {
		return Keypair{}, fmt.Errorf("failed to derive public key: %w", err)
	}
	return Keypair{
		PrivateKey: "0x" + priv.Text(16),
		PublicKey:  "0x" + x.Text(16),
	}, nil
}

// Sign signs a message hash with the given 0x-hex private key. The result
// is the [r, s] signature as decimal-string words, ready for calldata.
func Sign(privateKeyHex string, msgHash *big.Int) ([]string, error) {
	priv, ok := new(big.Int).SetString(strings.TrimPrefix(privateKeyHex, "0x"), 16)
	if !ok {
		return nil, fmt.Errorf("invalid private key")
	}
	r, s, err := curve.Curve.Sign(msgHash, priv)
	if err != nil {
		return nil, fmt.Errorf("failed to sign: %w", err)
	}
	return []string{r.String(), s.String()}, nil
}

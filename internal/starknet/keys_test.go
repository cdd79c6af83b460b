package starknet

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKeypair(t *testing.T) {
	a, err := GenerateKeypair()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(a.PrivateKey, "0x"))
	assert.True(t, strings.HasPrefix(a.PublicKey, "0x"))

	b, err := GenerateKeypair()
	require.NoError(t, err)
	assert.NotEqual(t, a.PrivateKey, b.PrivateKey)
}

func TestSign(t *testing.T) {
	pair, err := GenerateKeypair()
	require.NoError(t, err)

	sig, err := Sign(pair.PrivateKey, big.NewInt(123456789))
	require.NoError(t, err)
	require.Len(t, sig, 2)
	for _, part := range sig {
		_, ok := new(big.Int).SetString(part, 10)
		assert.True(t, ok, "signature part %q must be decimal", part)
	}
}

func TestSignInvalidKey(t *testing.T) {
	_, err := Sign("not-a-key", big.NewInt(1))
	require.Error(t, err)
}

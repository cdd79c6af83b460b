package starknet

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAddress(t *testing.T) {
	got := NormalizeAddress("0xAbC")
	assert.Equal(t, "0x"+"0000000000000000000000000000000000000000000000000000000000000abc", got)

	// already canonical input is unchanged
	assert.Equal(t, got, NormalizeAddress(got))
}

func TestEncodeShortString(t *testing.T) {
	got, err := EncodeShortString("ERC721")
	require.NoError(t, err)
	// ASCII bytes of "ERC721" as a big-endian integer
	assert.Equal(t, "0x455243373231", got)

	got, err = EncodeShortString("ERC20")
	require.NoError(t, err)
	assert.Equal(t, "0x4552433230", got)

	_, err = EncodeShortString("this string is far too long for a felt!!")
	require.Error(t, err)
}

func TestEncodeLongString(t *testing.T) {
	short, _ := EncodeShortString("ipfs://QmX")
	assert.Equal(t, []string{"1", short}, EncodeLongString("ipfs://QmX"))

	// 40 chars split at the 31-char felt boundary
	long := EncodeLongString("0123456789012345678901234567890123456789")
	require.Len(t, long, 3)
	assert.Equal(t, "2", long[0])
	first, _ := EncodeShortString("0123456789012345678901234567890")
	second, _ := EncodeShortString("123456789")
	assert.Equal(t, first, long[1])
	assert.Equal(t, second, long[2])
}

func TestSplitUint256(t *testing.T) {
	low, high := SplitUint256(big.NewInt(42))
	assert.Equal(t, "42", low)
	assert.Equal(t, "0", high)

	// 2^128 + 7 -> low 7, high 1
	v := new(big.Int).Add(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(7))
	low, high = SplitUint256(v)
	assert.Equal(t, "7", low)
	assert.Equal(t, "1", high)
}

func TestWordToFelt(t *testing.T) {
	f, err := WordToFelt("0x1a")
	require.NoError(t, err)
	assert.Equal(t, "26", f.BigInt(new(big.Int)).String())

	f, err = WordToFelt("1000000")
	require.NoError(t, err)
	assert.Equal(t, "1000000", f.BigInt(new(big.Int)).String())

	_, err = WordToFelt("not-a-number")
	require.Error(t, err)
}

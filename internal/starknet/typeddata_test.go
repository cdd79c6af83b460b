package starknet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medialane/internal/model"
)

func testOrder() *model.Order {
	return &model.Order{
		Offerer: NormalizeAddress("0x0abc"),
		Offer: model.OrderItem{
			ItemType:             model.ItemTypeERC721,
			Token:                NormalizeAddress("0x0c0ffee"),
			IdentifierOrCriteria: "42",
			StartAmount:          "1",
			EndAmount:            "1",
		},
		Consideration: model.ConsiderationItem{
			OrderItem: model.OrderItem{
				ItemType:             model.ItemTypeERC20,
				Token:                NormalizeAddress("0x049d"),
				IdentifierOrCriteria: "0",
				StartAmount:          "10500000000000000000",
				EndAmount:            "10500000000000000000",
			},
			Recipient: NormalizeAddress("0x0abc"),
		},
		StartTime: "1700000300",
		EndTime:   "1700604800",
		Salt:      "123456",
		Nonce:     "7",
	}
}

func TestOrderHashDeterministic(t *testing.T) {
	a, err := OrderHash(testOrder())
	require.NoError(t, err)
	b, err := OrderHash(testOrder())
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.True(t, strings.HasPrefix(a, "0x"))
}

func TestOrderHashSensitiveToFields(t *testing.T) {
	base, err := OrderHash(testOrder())
	require.NoError(t, err)

	mutations := map[string]func(*model.Order){
		"salt":   func(o *model.Order) { o.Salt = "123457" },
		"nonce":  func(o *model.Order) { o.Nonce = "8" },
		"price":  func(o *model.Order) { o.Consideration.StartAmount = "10500000000000000001" },
		"expiry": func(o *model.Order) { o.EndTime = "1700604801" },
	}
	for name, mutate := range mutations {
		o := testOrder()
		mutate(o)
		h, err := OrderHash(o)
		require.NoError(t, err)
		assert.NotEqual(t, base, h, "mutating %s must change the hash", name)
	}
}

func TestSigningDigestBindsAccountAndChain(t *testing.T) {
	structHash, err := OrderHash(testOrder())
	require.NoError(t, err)

	base, err := SigningDigest(structHash, "0x0abc", "SN_MAIN")
	require.NoError(t, err)

	otherAccount, err := SigningDigest(structHash, "0x0def", "SN_MAIN")
	require.NoError(t, err)
	assert.NotEqual(t, base, otherAccount)

	otherChain, err := SigningDigest(structHash, "0x0abc", "SN_SEPOLIA")
	require.NoError(t, err)
	assert.NotEqual(t, base, otherChain)

	// address padding must not change the digest
	padded, err := SigningDigest(structHash, NormalizeAddress("0x0abc"), "SN_MAIN")
	require.NoError(t, err)
	assert.Equal(t, base, padded)
}

func TestFulfillmentAndCancellationHashesDiffer(t *testing.T) {
	f, err := FulfillmentHash(&model.FulfillmentParams{
		OrderHash: "0x0aaa", Fulfiller: NormalizeAddress("0x0abc"), Nonce: "7",
	})
	require.NoError(t, err)

	c, err := CancellationHash(&model.CancellationParams{
		OrderHash: "0x0aaa", Offerer: NormalizeAddress("0x0abc"), Nonce: "7",
	})
	require.NoError(t, err)

	// same fields, different type tags
	assert.NotEqual(t, f, c)
}

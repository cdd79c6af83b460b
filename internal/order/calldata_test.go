package order

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medialane/internal/model"
)

func pad(addr string) string {
	s := strings.TrimPrefix(addr, "0x")
	return "0x" + strings.Repeat("0", 64-len(s)) + s
}

func sampleOrder() *model.Order {
	return &model.Order{
		Offerer: pad("beef"),
		Offer: model.OrderItem{
			ItemType:             model.ItemTypeERC721,
			Token:                pad("dead"),
			IdentifierOrCriteria: "42",
			StartAmount:          "1",
			EndAmount:            "1",
		},
		Consideration: model.ConsiderationItem{
			OrderItem: model.OrderItem{
				ItemType:             model.ItemTypeERC20,
				Token:                pad("c0ffee"),
				IdentifierOrCriteria: "0",
				StartAmount:          "10500000",
				EndAmount:            "10500000",
			},
			Recipient: pad("beef"),
		},
		StartTime: "1700000300",
		EndTime:   "1700604800",
		Salt:      "123456",
		Nonce:     "7",
	}
}

// Golden vector: the register_order word layout is a wire contract and
// must not drift.
func TestEncodeOrderCalldataGolden(t *testing.T) {
	sig := []string{"111", "222"}

	got, err := EncodeOrderCalldata(sampleOrder(), sig)
	require.NoError(t, err)

	want := []string{
		pad("beef"),          // offerer
		"0x455243373231",     // "ERC721"
		pad("dead"),          // offer token
		"42",                 // offer identifier
		"1",                  // offer start amount
		"1",                  // offer end amount
		"0x4552433230",       // "ERC20"
		pad("c0ffee"),        // consideration token
		"0",                  // consideration identifier
		"10500000",           // consideration start amount
		"10500000",           // consideration end amount
		pad("beef"),          // recipient
		"1700000300",         // start time
		"1700604800",         // end time
		"123456",             // salt
		"7",                  // nonce
		"2", "111", "222",    // length-prefixed signature
	}
	assert.Equal(t, want, got)
}

func TestEncodeOrderCalldataDeterministic(t *testing.T) {
	sig := []string{"111", "222"}
	a, err := EncodeOrderCalldata(sampleOrder(), sig)
	require.NoError(t, err)
	b, err := EncodeOrderCalldata(sampleOrder(), sig)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEncodeFulfillmentCalldata(t *testing.T) {
	p := &model.FulfillmentParams{OrderHash: "0x0abc", Fulfiller: pad("1"), Nonce: "5"}
	got := EncodeFulfillmentCalldata(p, []string{"9", "8"})
	assert.Equal(t, []string{"0x0abc", pad("1"), "5", "2", "9", "8"}, got)
}

func TestEncodeCancellationCalldata(t *testing.T) {
	p := &model.CancellationParams{OrderHash: "0x0abc", Offerer: pad("2"), Nonce: "6"}
	got := EncodeCancellationCalldata(p, []string{"9", "8"})
	assert.Equal(t, []string{"0x0abc", pad("2"), "6", "2", "9", "8"}, got)
}

func TestApproveCalls(t *testing.T) {
	c, err := ApproveNFTCall("0xdead", "0xfeed", "42")
	require.NoError(t, err)
	assert.Equal(t, "approve", c.Entrypoint)
	assert.Equal(t, []string{pad("feed"), "42", "0"}, c.Calldata)

	c, err = ApproveTokenCall("0xc0ffee", "0xfeed", "10500000")
	require.NoError(t, err)
	assert.Equal(t, []string{pad("feed"), "10500000", "0"}, c.Calldata)

	_, err = ApproveNFTCall("0xdead", "0xfeed", "not-a-number")
	require.Error(t, err)
}

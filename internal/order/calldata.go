package order

import (
	"fmt"
	"math/big"
	"strconv"

	"medialane/internal/model"
	"medialane/internal/starknet"
)

// Calldata encoders. The word order below is a wire contract with the
// marketplace contract's entrypoints; reordering a field breaks on-chain
// decoding. Signatures are length-prefixed.

// EncodeOrderCalldata flattens a canonical order plus its signature into
// the register_order word list.
func EncodeOrderCalldata(o *model.Order, sig []string) ([]string, error) {
	offerType, err := starknet.EncodeShortString(o.Offer.ItemType)
	if err != nil {
		return nil, fmt.Errorf("failed to encode offer item type: %w", err)
	}
	considerationType, err := starknet.EncodeShortString(o.Consideration.ItemType)
	if err != nil {
		return nil, fmt.Errorf("failed to encode consideration item type: %w", err)
	}

	words := []string{
		o.Offerer,
		offerType,
		o.Offer.Token,
		o.Offer.IdentifierOrCriteria,
		o.Offer.StartAmount,
		o.Offer.EndAmount,
		considerationType,
		o.Consideration.Token,
		o.Consideration.IdentifierOrCriteria,
		o.Consideration.StartAmount,
		o.Consideration.EndAmount,
		o.Consideration.Recipient,
		o.StartTime,
		o.EndTime,
		o.Salt,
		o.Nonce,
		strconv.Itoa(len(sig)),
	}
	return append(words, sig...), nil
}

// EncodeFulfillmentCalldata flattens fulfillment params into the
// fulfill_order word list.
func EncodeFulfillmentCalldata(p *model.FulfillmentParams, sig []string) []string {
	words := []string{p.OrderHash, p.Fulfiller, p.Nonce, strconv.Itoa(len(sig))}
	return append(words, sig...)
}

// EncodeCancellationCalldata flattens cancellation params into the
// cancel_order word list.
func EncodeCancellationCalldata(p *model.CancellationParams, sig []string) []string {
	words := []string{p.OrderHash, p.Offerer, p.Nonce, strconv.Itoa(len(sig))}
	return append(words, sig...)
}

// ApproveNFTCall builds the approve call on the NFT contract that must
// precede register_order for a listing. Token ids are u256 (low, high).
func ApproveNFTCall(nftContract, marketplace, tokenID string) (model.Call, error) {
	id, ok := new(big.Int).SetString(tokenID, 10)
	if !ok {
		return model.Call{}, fmt.Errorf("invalid token id %q", tokenID)
	}
	low, high := starknet.SplitUint256(id)
	return model.Call{
		ContractAddress: starknet.NormalizeAddress(nftContract),
		Entrypoint:      "approve",
		Calldata:        []string{starknet.NormalizeAddress(marketplace), low, high},
	}, nil
}

// ApproveTokenCall builds the approve call on the consideration token
// contract for the exact consideration amount, preceding fulfill_order.
func ApproveTokenCall(tokenContract, marketplace, amount string) (model.Call, error) {
	v, ok := new(big.Int).SetString(amount, 10)
	if !ok {
		return model.Call{}, fmt.Errorf("invalid amount %q", amount)
	}
	low, high := starknet.SplitUint256(v)
	return model.Call{
		ContractAddress: starknet.NormalizeAddress(tokenContract),
		Entrypoint:      "approve",
		Calldata:        []string{starknet.NormalizeAddress(marketplace), low, high},
	}, nil
}

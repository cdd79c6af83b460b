package starknet

import (
	"fmt"
	"math/big"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/NethermindEth/starknet.go/curve"
	"github.com/NethermindEth/starknet.go/utils"

	"medialane/internal/model"
)

// Typed-data hashing for the marketplace structs. Each struct hash is a
// Poseidon chain over a type tag and the canonical field order; the signed
// digest additionally binds the signer account and the chain id so a
// signature cannot be replayed across accounts or networks.

const (
	domainName    = "Medialane"
	domainVersion = "1"
	messagePrefix = "StarkNet Message"
)

var (
	domainTypeTag       = utils.GetSelectorFromNameFelt("StarknetDomain(name,version,chainId)")
	orderTypeTag        = utils.GetSelectorFromNameFelt("Order(offerer,offer,consideration,start_time,end_time,salt,nonce)")
	fulfillmentTypeTag  = utils.GetSelectorFromNameFelt("Fulfillment(order_hash,fulfiller,nonce)")
	cancellationTypeTag = utils.GetSelectorFromNameFelt("Cancellation(order_hash,offerer,nonce)")
)

// OrderHash computes the canonical struct hash of an order, as a 0x hex felt.
// This is the order_hash referenced by fulfillment and cancellation.
func OrderHash(o *model.Order) (string, error) {
	words := []string{o.Offerer}
	offerType, err := EncodeShortString(o.Offer.ItemType)
	if err != nil {
		return "", err
	}
	considerationType, err := EncodeShortString(o.Consideration.ItemType)
	if err != nil {
		return "", err
	}
	words = append(words,
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
	)
	return structHash(orderTypeTag, words)
}

// FulfillmentHash computes the struct hash of fulfillment params.
func FulfillmentHash(p *model.FulfillmentParams) (string, error) {
	return structHash(fulfillmentTypeTag, []string{p.OrderHash, p.Fulfiller, p.Nonce})
}

// CancellationHash computes the struct hash of cancellation params.
func CancellationHash(p *model.CancellationParams) (string, error) {
	return structHash(cancellationTypeTag, []string{p.OrderHash, p.Offerer, p.Nonce})
}

// SigningDigest binds a struct hash to the signer account and chain id,
// producing the message hash that is actually signed.
func SigningDigest(structHashHex, account, chainID string) (*big.Int, error) {
	prefix, err := shortStringFelt(messagePrefix)
	if err != nil {
		return nil, err
	}
	domain, err := domainHash(chainID)
	if err != nil {
		return nil, err
	}
	acc, err := WordToFelt(NormalizeAddress(account))
	if err != nil {
		return nil, err
	}
	sh, err := WordToFelt(structHashHex)
	if err != nil {
		return nil, err
	}
	digest := curve.PoseidonArray(prefix, domain, acc, sh)
	return utils.FeltToBigInt(digest), nil
}

func domainHash(chainID string) (*felt.Felt, error) {
	name, err := shortStringFelt(domainName)
	if err != nil {
		return nil, err
	}
	version, err := shortStringFelt(domainVersion)
	if err != nil {
		return nil, err
	}
	chain, err := shortStringFelt(chainID)
	if err != nil {
		return nil, err
	}
	return curve.PoseidonArray(domainTypeTag, name, version, chain), nil
}

func structHash(typeTag *felt.Felt, words []string) (string, error) {
	felts := make([]*felt.Felt, 0, len(words)+1)
	felts = append(felts, typeTag)
	for _, w := range words {
		f, err := WordToFelt(w)
		if err != nil {
			return "", fmt.Errorf("failed to encode struct field: %w", err)
		}
		felts = append(felts, f)
	}
	return curve.PoseidonArray(felts...).String(), nil
}

func shortStringFelt(s string) (*felt.Felt, error) {
	hex, err := EncodeShortString(s)
	if err != nil {
		return nil, err
	}
	return WordToFelt(hex)
}

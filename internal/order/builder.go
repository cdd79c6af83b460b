// Package order builds canonical, hash-stable order structures and their
// on-chain calldata encodings.
package order

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"medialane/internal/common"
	"medialane/internal/errs"
	"medialane/internal/model"
	"medialane/internal/starknet"
)

// startDelaySeconds is the activation buffer tolerating clock skew and
// propagation before an order becomes active.
const startDelaySeconds = 300

// Input is the user-facing intent behind a listing or an offer.
type Input struct {
	AssetContract   string
	TokenID         string
	Price           string // human-readable decimal, e.g. "10.5"
	CurrencySymbol  string
	DurationSeconds int64
	OffererAddress  string
}

// BuildOrder converts intent into a canonical order. A sell order offers
// the NFT against a fungible consideration; a bid mirrors the two sides.
// The nonce must be freshly read from the chain; it is never cached here.
//
// Timing: start_time = now+300, but end_time = now+duration. Duration is
// measured from submission, not activation, so the two are deliberately
// not additive.
func BuildOrder(in Input, nonce string, isSell bool, now time.Time) (*model.Order, error) {
	token, ok := model.TokenBySymbol(in.CurrencySymbol)
	if !ok {
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCurrency, in.CurrencySymbol)
	}
	if in.DurationSeconds < model.MinListingDurationSeconds {
		return nil, fmt.Errorf("duration %ds below one-day minimum", in.DurationSeconds)
	}

	priceWei, err := common.ToBaseUnits(in.Price, token.Decimals)
	if err != nil {
		return nil, fmt.Errorf("invalid price: %w", err)
	}
	price := priceWei.String()

	offerer := starknet.NormalizeAddress(in.OffererAddress)
	asset := starknet.NormalizeAddress(in.AssetContract)
	currency := starknet.NormalizeAddress(token.Address)

	startTime := now.Unix() + startDelaySeconds
	endTime := now.Unix() + in.DurationSeconds
	salt := strconv.Itoa(rand.Intn(1000000))

	o := &model.Order{
		Offerer:   offerer,
		StartTime: strconv.FormatInt(startTime, 10),
		EndTime:   strconv.FormatInt(endTime, 10),
		Salt:      salt,
		Nonce:     nonce,
	}
	if isSell {
		o.Offer = model.OrderItem{
			ItemType:             model.ItemTypeERC721,
			Token:                asset,
			IdentifierOrCriteria: in.TokenID,
			StartAmount:          "1",
			EndAmount:            "1",
		}
		o.Consideration = model.ConsiderationItem{
			OrderItem: model.OrderItem{
				ItemType:             model.ItemTypeERC20,
				Token:                currency,
				IdentifierOrCriteria: "0",
				StartAmount:          price,
				EndAmount:            price,
			},
			Recipient: offerer,
		}
	} else {
		o.Offer = model.OrderItem{
			ItemType:             model.ItemTypeERC20,
			Token:                currency,
			IdentifierOrCriteria: "0",
			StartAmount:          price,
			EndAmount:            price,
		}
		o.Consideration = model.ConsiderationItem{
			OrderItem: model.OrderItem{
				ItemType:             model.ItemTypeERC721,
				Token:                asset,
				IdentifierOrCriteria: in.TokenID,
				StartAmount:          "1",
				EndAmount:            "1",
			},
			Recipient: offerer,
		}
	}
	return o, nil
}

// BuildFulfillment binds an order hash, the fulfiller and a fresh nonce.
func BuildFulfillment(orderHash, fulfillerAddress, nonce string) *model.FulfillmentParams {
	return &model.FulfillmentParams{
		OrderHash: orderHash,
		Fulfiller: starknet.NormalizeAddress(fulfillerAddress),
		Nonce:     nonce,
	}
}

// BuildCancellation binds an order hash, the offerer and a fresh nonce.
func BuildCancellation(orderHash, offererAddress, nonce string) *model.CancellationParams {
	return &model.CancellationParams{
		OrderHash: orderHash,
		Offerer:   starknet.NormalizeAddress(offererAddress),
		Nonce:     nonce,
	}
}

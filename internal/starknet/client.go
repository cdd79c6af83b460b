package starknet

import (
	"context"
	"fmt"
	"time"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/NethermindEth/starknet.go/rpc"
	"github.com/NethermindEth/starknet.go/utils"
	"go.uber.org/zap"
)

// Receipt is the subset of a transaction receipt the executor classifies.
type Receipt struct {
	ExecutionStatus string
	RevertReason    string
}

// Receipt execution statuses as reported by the chain.
const (
	ExecutionStatusSucceeded = "SUCCEEDED"
	ExecutionStatusReverted  = "REVERTED"
)

// Client is a read-only Starknet RPC client shared across the process.
// Nonce lookups and receipt polls are independent idempotent queries, so a
// single instance is safe for concurrent use.
type Client struct {
	provider     *rpc.Provider
	marketplace  string
	pollInterval time.Duration
	timeout      time.Duration
	logger       *zap.Logger
}

// NewClient creates a Starknet RPC client bound to the marketplace contract.
func NewClient(rpcURL, marketplaceContract string, pollInterval, timeout time.Duration, logger *zap.Logger) (*Client, error) {
	provider, err := rpc.NewProvider(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create rpc provider: %w", err)
	}
	return &Client{
		provider:     provider,
		marketplace:  NormalizeAddress(marketplaceContract),
		pollInterval: pollInterval,
		timeout:      timeout,
		logger:       logger,
	}, nil
}

// Nonce reads the marketplace's per-offerer nonce counter. A read failure
// defaults the counter to "0": fresh accounts have no nonce entry yet, and
// a genuinely stale value surfaces later as an on-chain revert.
func (c *Client) Nonce(ctx context.Context, offerer string) string {
	contract, err := utils.HexToFelt(c.marketplace)
	if err != nil {
		return "0"
	}
	addr, err := utils.HexToFelt(NormalizeAddress(offerer))
	if err != nil {
		return "0"
	}

	result, err := c.provider.Call(ctx, rpc.FunctionCall{
		ContractAddress:    contract,
		EntryPointSelector: utils.GetSelectorFromNameFelt("nonces"),
		Calldata:           []*felt.Felt{addr},
	}, rpc.WithBlockTag("latest"))
	if err != nil || len(result) == 0 {
		c.logger.Debug("nonce read failed, defaulting to 0",
			zap.String("offerer", offerer), zap.Error(err))
		return "0"
	}
	return utils.FeltToBigInt(result[0]).String()
}

// WaitForReceipt polls for the transaction receipt until it is available
// or the configured wall-clock timeout elapses.
func (c *Client) WaitForReceipt(ctx context.Context, txHash string) (*Receipt, error) {
	hash, err := utils.HexToFelt(txHash)
	if err != nil {
		return nil, fmt.Errorf("invalid transaction hash %q: %w", txHash, err)
	}

	deadline := time.Now().Add(c.timeout)
	for {
		resp, err := c.provider.TransactionReceipt(ctx, hash)
		if err == nil && resp != nil {
			return &Receipt{
				ExecutionStatus: string(resp.TransactionReceipt.ExecutionStatus),
				RevertReason:    resp.TransactionReceipt.RevertReason,
			}, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("timed out waiting for receipt of %s", txHash)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.pollInterval):
		}
	}
}

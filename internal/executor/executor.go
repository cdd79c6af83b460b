// Package executor submits call bundles through the relay and follows them
// to a terminal state. One transaction per user at a time.
package executor

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"medialane/internal/errs"
	"medialane/internal/model"
	"medialane/internal/relay"
	"medialane/internal/repository"
	"medialane/internal/starknet"
)

// minTxHashLength rejects truncated or placeholder hashes from the relay.
const minTxHashLength = 10

// Relay is the slice of the relay used for execution.
type Relay interface {
	Execute(ctx context.Context, bearer string, req relay.ExecuteRequest) (string, error)
}

// TokenSource mints bearer tokens for relay calls.
type TokenSource interface {
	Token(ctx context.Context, userID uuid.UUID) (string, error)
}

// ReceiptWaiter polls the chain for a transaction receipt.
type ReceiptWaiter interface {
	WaitForReceipt(ctx context.Context, txHash string) (*starknet.Receipt, error)
}

// Request is one call bundle to run on a user's behalf.
type Request struct {
	UserID          uuid.UUID
	Pin             string
	ContractAddress string
	Calls           []model.Call
	// Wallet overrides the stored wallet when set. Session signing passes
	// the session key material here.
	Wallet *relay.Wallet
}

// Executor runs call bundles and tracks per-user progress.
type Executor struct {
	relay    Relay
	tokens   TokenSource
	receipts ReceiptWaiter
	wallets  repository.WalletRepository
	logger   *zap.Logger

	mu       sync.Mutex
	inflight map[uuid.UUID]bool
	status   map[uuid.UUID]model.TxStatus
}

// New constructs an executor.
func New(
	relayClient Relay,
	tokens TokenSource,
	receipts ReceiptWaiter,
	wallets repository.WalletRepository,
	logger *zap.Logger,
) *Executor {
	return &Executor{
		relay:    relayClient,
		tokens:   tokens,
		receipts: receipts,
		wallets:  wallets,
		logger:   logger,
		inflight: make(map[uuid.UUID]bool),
		status:   make(map[uuid.UUID]model.TxStatus),
	}
}

// Status reports the user's current transaction state.
func (e *Executor) Status(userID uuid.UUID) model.TxStatus {
	e.mu.Lock()
	defer e.mu.Unlock()
	if s, ok := e.status[userID]; ok {
		return s
	}
	return model.TxStatusIdle
}

func (e *Executor) setStatus(userID uuid.UUID, s model.TxStatus) {
	e.mu.Lock()
	e.status[userID] = s
	e.mu.Unlock()
}

// Execute submits the request through the relay and waits for its receipt.
// A second call for the same user while one is in flight fails immediately
// with ErrTxInProgress. Failures before a transaction hash exists are
// returned as errors; once a hash exists the outcome is always a
// TransactionResult, reverted receipts included.
func (e *Executor) Execute(ctx context.Context, req Request) (*model.TransactionResult, error) {
	e.mu.Lock()
	if e.inflight[req.UserID] {
		e.mu.Unlock()
		return nil, errs.ErrTxInProgress
	}
	e.inflight[req.UserID] = true
	e.status[req.UserID] = model.TxStatusSubmitting
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		delete(e.inflight, req.UserID)
		e.mu.Unlock()
	}()

	result, err := e.run(ctx, req)
	if err != nil {
		e.setStatus(req.UserID, model.TxStatusError)
		return nil, err
	}
	e.setStatus(req.UserID, result.Status)
	return result, nil
}

func (e *Executor) run(ctx context.Context, req Request) (*model.TransactionResult, error) {
	wallet := req.Wallet
	if wallet == nil {
		stored, err := e.wallets.Get(ctx, req.UserID)
		if err != nil {
			return nil, err
		}
		wallet = &relay.Wallet{
			PublicKey:           stored.PublicKey,
			EncryptedPrivateKey: stored.EncryptedPrivateKey,
		}
	}

	bearer, err := e.tokens.Token(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrNotAuthenticated, err)
	}

	txHash, err := e.relay.Execute(ctx, bearer, relay.ExecuteRequest{
		EncryptKey:      req.Pin,
		Wallet:          *wallet,
		ContractAddress: req.ContractAddress,
		Calls:           req.Calls,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to submit transaction: %w", err)
	}
	if !strings.HasPrefix(txHash, "0x") || len(txHash) < minTxHashLength {
		return nil, fmt.Errorf("%w: malformed transaction hash %q", errs.ErrInvalidRelayResponse, txHash)
	}

	e.setStatus(req.UserID, model.TxStatusConfirming)
	e.logger.Info("transaction submitted",
		zap.String("userID", req.UserID.String()),
		zap.String("txHash", txHash),
	)

	receipt, err := e.receipts.WaitForReceipt(ctx, txHash)
	if err != nil {
		// Receipt never arrived. The transaction may still land, but the
		// caller needs a terminal answer; report it as reverted with the
		// poll failure as the reason.
		return &model.TransactionResult{
			TxHash:       txHash,
			Status:       model.TxStatusReverted,
			RevertReason: err.Error(),
		}, nil
	}

	return classify(txHash, receipt), nil
}

// classify maps a receipt onto a terminal result. Anything other than a
// clean SUCCEEDED counts as reverted.
func classify(txHash string, receipt *starknet.Receipt) *model.TransactionResult {
	reverted := receipt.ExecutionStatus == starknet.ExecutionStatusReverted ||
		receipt.ExecutionStatus == "REJECTED" ||
		receipt.RevertReason != ""
	if reverted {
		reason := receipt.RevertReason
		if reason == "" {
			reason = "transaction " + strings.ToLower(receipt.ExecutionStatus)
		}
		return &model.TransactionResult{
			TxHash:       txHash,
			Status:       model.TxStatusReverted,
			RevertReason: reason,
		}
	}
	return &model.TransactionResult{
		TxHash: txHash,
		Status: model.TxStatusConfirmed,
	}
}

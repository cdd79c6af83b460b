// Package marketplace orchestrates the signed marketplace actions: list,
// offer, fulfill, cancel, wallet onboarding and asset creation. Each
// action reads a fresh nonce, signs the typed payload and hands the call
// bundle to the executor.
package marketplace

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"medialane/internal/crypto"
	"medialane/internal/errs"
	"medialane/internal/executor"
	"medialane/internal/model"
	"medialane/internal/order"
	"medialane/internal/relay"
	"medialane/internal/repository"
	"medialane/internal/session"
	"medialane/internal/starknet"
)

// SignerSource resolves signing credentials and session records.
type SignerSource interface {
	Signer(ctx context.Context, userID uuid.UUID, pin string) (*session.Signer, error)
	Session(ctx context.Context, userID uuid.UUID) (*model.SessionKey, error)
}

// NonceSource reads the offerer's marketplace nonce from the chain.
type NonceSource interface {
	Nonce(ctx context.Context, offerer string) string
}

// TxExecutor runs a call bundle to a terminal state.
type TxExecutor interface {
	Execute(ctx context.Context, req executor.Request) (*model.TransactionResult, error)
}

// Deployer is the slice of the relay used for account onboarding.
type Deployer interface {
	DeployAccount(ctx context.Context, bearer, publicKey string) (account, txHash string, err error)
}

// TokenSource mints bearer tokens for relay calls.
type TokenSource interface {
	Token(ctx context.Context, userID uuid.UUID) (string, error)
}

// Pinner pins content and returns ipfs:// URIs.
type Pinner interface {
	PinImage(ctx context.Context, name string, data []byte) (string, error)
	PinJSON(ctx context.Context, name string, payload any) (string, error)
}

// OrderResult pairs the order's typed-data hash with the on-chain outcome.
type OrderResult struct {
	OrderHash string                   `json:"orderHash"`
	Result    *model.TransactionResult `json:"result"`
}

// Service wires the marketplace actions together.
type Service struct {
	wallets  repository.WalletRepository
	signers  SignerSource
	chain    NonceSource
	exec     TxExecutor
	deployer Deployer
	tokens   TokenSource
	pinner   Pinner

	marketplaceContract string
	mintContract        string
	chainID             string

	now    func() time.Time
	logger *zap.Logger
}

// NewService constructs the marketplace service.
func NewService(
	wallets repository.WalletRepository,
	signers SignerSource,
	chain NonceSource,
	exec TxExecutor,
	deployer Deployer,
	tokens TokenSource,
	pinner Pinner,
	marketplaceContract, mintContract, chainID string,
	logger *zap.Logger,
) *Service {
	return &Service{
		wallets:             wallets,
		signers:             signers,
		chain:               chain,
		exec:                exec,
		deployer:            deployer,
		tokens:              tokens,
		pinner:              pinner,
		marketplaceContract: starknet.NormalizeAddress(marketplaceContract),
		mintContract:        starknet.NormalizeAddress(mintContract),
		chainID:             chainID,
		now:                 time.Now,
		logger:              logger,
	}
}

// WithClock overrides the service clock (tests only).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// CreateWallet generates a keypair, deploys the account through the relay
// and persists the encrypted owner key. The response carries the account
// address and a QR code of it.
func (s *Service) CreateWallet(ctx context.Context, userID uuid.UUID, pin string) (*model.CreateWalletResponse, error) {
	if pin == "" {
		return nil, fmt.Errorf("pin is required")
	}

	pair, err := starknet.GenerateKeypair()
	if err != nil {
		return nil, fmt.Errorf("failed to generate wallet keypair: %w", err)
	}
	encrypted, err := crypto.EncryptKey([]byte(pair.PrivateKey), pin)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt wallet key: %w", err)
	}

	bearer, err := s.tokens.Token(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrNotAuthenticated, err)
	}
	account, txHash, err := s.deployer.DeployAccount(ctx, bearer, pair.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to deploy account: %w", err)
	}
	account = starknet.NormalizeAddress(account)

	wallet := &model.Wallet{
		UserID:              userID,
		PublicKey:           account,
		EncryptedPrivateKey: encrypted,
		CreatedAt:           s.now(),
	}
	if err := s.wallets.Save(ctx, wallet); err != nil {
		return nil, fmt.Errorf("failed to persist wallet: %w", err)
	}
	s.logger.Info("wallet created",
		zap.String("userID", userID.String()),
		zap.String("account", account),
	)

	png, err := qrcode.Encode(account, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to render QR code: %w", err)
	}
	return &model.CreateWalletResponse{
		Address: account,
		QR:      base64.StdEncoding.EncodeToString(png),
		TxHash:  txHash,
	}, nil
}

// Wallet returns the user's wallet record.
func (s *Service) Wallet(ctx context.Context, userID uuid.UUID) (*model.Wallet, error) {
	return s.wallets.Get(ctx, userID)
}

// CreateListing signs and registers a sell order, chaining the NFT
// approval in front of register_order.
func (s *Service) CreateListing(ctx context.Context, userID uuid.UUID, req model.ListingRequest) (*OrderResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.registerOrder(ctx, userID, req, true)
}

// MakeOffer signs and registers a bid for a listed token. Offers carry the
// currency approval for the bid amount.
func (s *Service) MakeOffer(ctx context.Context, userID uuid.UUID, req model.ListingRequest) (*OrderResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.registerOrder(ctx, userID, req, false)
}

func (s *Service) registerOrder(ctx context.Context, userID uuid.UUID, req model.ListingRequest, isSell bool) (*OrderResult, error) {
	signer, err := s.signers.Signer(ctx, userID, req.Pin)
	if err != nil {
		return nil, err
	}

	nonce := s.chain.Nonce(ctx, signer.AccountAddress)
	o, err := order.BuildOrder(order.Input{
		AssetContract:   req.AssetContract,
		TokenID:         req.TokenID,
		Price:           req.Price,
		CurrencySymbol:  req.CurrencySymbol,
		DurationSeconds: req.DurationSeconds,
		OffererAddress:  signer.AccountAddress,
	}, nonce, isSell, s.now())
	if err != nil {
		return nil, err
	}

	sig, structHash, err := s.signStruct(signer, func() (string, error) { return starknet.OrderHash(o) })
	if err != nil {
		return nil, err
	}
	calldata, err := order.EncodeOrderCalldata(o, sig)
	if err != nil {
		return nil, err
	}

	var approve model.Call
	if isSell {
		approve, err = order.ApproveNFTCall(req.AssetContract, s.marketplaceContract, req.TokenID)
	} else {
		approve, err = order.ApproveTokenCall(o.Offer.Token, s.marketplaceContract, o.Offer.StartAmount)
	}
	if err != nil {
		return nil, err
	}

	calls := []model.Call{
		approve,
		{ContractAddress: s.marketplaceContract, Entrypoint: "register_order", Calldata: calldata},
	}
	result, err := s.execute(ctx, userID, req.Pin, calls)
	if err != nil {
		return nil, err
	}
	return &OrderResult{OrderHash: structHash, Result: result}, nil
}

// FulfillOrder signs a fulfillment for an existing order hash and submits
// it, approving the consideration amount first.
func (s *Service) FulfillOrder(ctx context.Context, userID uuid.UUID, req model.FulfillRequest) (*OrderResult, error) {
	if req.OrderHash == "" {
		return nil, fmt.Errorf("orderHash is required")
	}
	signer, err := s.signers.Signer(ctx, userID, req.Pin)
	if err != nil {
		return nil, err
	}

	nonce := s.chain.Nonce(ctx, signer.AccountAddress)
	p := order.BuildFulfillment(req.OrderHash, signer.AccountAddress, nonce)
	sig, _, err := s.signStruct(signer, func() (string, error) { return starknet.FulfillmentHash(p) })
	if err != nil {
		return nil, err
	}

	var calls []model.Call
	if req.ConsiderationToken != "" && req.ConsiderationAmount != "" {
		approve, err := order.ApproveTokenCall(req.ConsiderationToken, s.marketplaceContract, req.ConsiderationAmount)
		if err != nil {
			return nil, err
		}
		calls = append(calls, approve)
	}
	calls = append(calls, model.Call{
		ContractAddress: s.marketplaceContract,
		Entrypoint:      "fulfill_order",
		Calldata:        order.EncodeFulfillmentCalldata(p, sig),
	})

	result, err := s.execute(ctx, userID, req.Pin, calls)
	if err != nil {
		return nil, err
	}
	return &OrderResult{OrderHash: req.OrderHash, Result: result}, nil
}

// CancelOrder signs a cancellation for one of the user's own orders.
func (s *Service) CancelOrder(ctx context.Context, userID uuid.UUID, req model.CancelRequest) (*OrderResult, error) {
	if req.OrderHash == "" {
		return nil, fmt.Errorf("orderHash is required")
	}
	signer, err := s.signers.Signer(ctx, userID, req.Pin)
	if err != nil {
		return nil, err
	}

	nonce := s.chain.Nonce(ctx, signer.AccountAddress)
	p := order.BuildCancellation(req.OrderHash, signer.AccountAddress, nonce)
	sig, _, err := s.signStruct(signer, func() (string, error) { return starknet.CancellationHash(p) })
	if err != nil {
		return nil, err
	}

	calls := []model.Call{{
		ContractAddress: s.marketplaceContract,
		Entrypoint:      "cancel_order",
		Calldata:        order.EncodeCancellationCalldata(p, sig),
	}}
	result, err := s.execute(ctx, userID, req.Pin, calls)
	if err != nil {
		return nil, err
	}
	return &OrderResult{OrderHash: req.OrderHash, Result: result}, nil
}

// assetMetadata is the ERC-721 metadata document pinned for new assets.
type assetMetadata struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Image       string      `json:"image,omitempty"`
	Attributes  []assetAttr `json:"attributes"`
}

type assetAttr struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

// CreateAsset pins the asset's image and metadata, then mints the token to
// the user's wallet with the metadata URI.
func (s *Service) CreateAsset(ctx context.Context, userID uuid.UUID, req model.CreateAssetRequest) (*model.CreateAssetResponse, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	wallet, err := s.wallets.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	var imageURI string
	if req.ImageBase64 != "" {
		data, err := base64.StdEncoding.DecodeString(req.ImageBase64)
		if err != nil {
			return nil, fmt.Errorf("invalid image encoding: %w", err)
		}
		imageURI, err = s.pinner.PinImage(ctx, req.Name, data)
		if err != nil {
			return nil, fmt.Errorf("failed to pin image: %w", err)
		}
	}

	meta := assetMetadata{
		Name:        req.Name,
		Description: req.Description,
		Image:       imageURI,
		Attributes: []assetAttr{
			{TraitType: "IP Type", Value: req.IPType},
			{TraitType: "License", Value: req.License},
		},
	}
	uri, err := s.pinner.PinJSON(ctx, req.Name, meta)
	if err != nil {
		return nil, fmt.Errorf("failed to pin metadata: %w", err)
	}

	calldata := append([]string{wallet.PublicKey}, starknet.EncodeLongString(uri)...)
	result, err := s.execute(ctx, userID, req.Pin, []model.Call{{
		ContractAddress: s.mintContract,
		Entrypoint:      "mint",
		Calldata:        calldata,
	}})
	if err != nil {
		return nil, err
	}
	if result.Status != model.TxStatusConfirmed {
		return nil, fmt.Errorf("mint reverted: %s", result.RevertReason)
	}
	return &model.CreateAssetResponse{URI: uri, ImageURI: imageURI, TxHash: result.TxHash}, nil
}

// signStruct hashes the typed payload, binds it to the signer's account
// and chain, and signs the digest.
func (s *Service) signStruct(signer *session.Signer, hash func() (string, error)) (sig []string, structHash string, err error) {
	structHash, err = hash()
	if err != nil {
		return nil, "", err
	}
	digest, err := starknet.SigningDigest(structHash, signer.AccountAddress, s.chainID)
	if err != nil {
		return nil, "", err
	}
	sig, err = signer.SignDigest(digest)
	if err != nil {
		return nil, "", err
	}
	return sig, structHash, nil
}

// execute hands the call bundle to the executor. An active session key is
// passed through as the wallet material so the relay signs with it instead
// of the owner key.
func (s *Service) execute(ctx context.Context, userID uuid.UUID, pin string, calls []model.Call) (*model.TransactionResult, error) {
	req := executor.Request{
		UserID:          userID,
		Pin:             pin,
		ContractAddress: s.marketplaceContract,
		Calls:           calls,
	}
	if w := s.sessionWallet(ctx, userID); w != nil {
		req.Wallet = w
	}
	return s.exec.Execute(ctx, req)
}

// sessionWallet returns session key material suitable for relay execution,
// or nil when no active session exists.
func (s *Service) sessionWallet(ctx context.Context, userID uuid.UUID) *relay.Wallet {
	sk, err := s.signers.Session(ctx, userID)
	if err != nil {
		if !errors.Is(err, errs.ErrNotFound) {
			s.logger.Warn("session lookup failed", zap.Error(err))
		}
		return nil
	}
	if !sk.Active(s.now()) || sk.EncryptedPrivateKey == "" {
		return nil
	}
	wallet, err := s.wallets.Get(ctx, userID)
	if err != nil {
		return nil
	}
	return &relay.Wallet{
		PublicKey:           wallet.PublicKey,
		EncryptedPrivateKey: sk.EncryptedPrivateKey,
	}
}

package marketplace

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"medialane/internal/crypto"
	"medialane/internal/errs"
	"medialane/internal/executor"
	"medialane/internal/model"
	"medialane/internal/session"
	"medialane/internal/starknet"
)

const (
	marketplaceAddr = "0x05e5b9b1d5d5f5e2c8a5b7f3d2e1c0a9b8f7e6d5c4b3a29180706050403020aa"
	mintAddr        = "0x02b2b9b1d5d5f5e2c8a5b7f3d2e1c0a9b8f7e6d5c4b3a29180706050403020bb"
	assetAddr       = "0x0111111111111111111111111111111111111111111111111111111111111111"
	chainID         = "SN_MAIN"
	pin             = "1234"
)

type fakeSigners struct {
	signer  *session.Signer
	err     error
	session *model.SessionKey
}

func (f *fakeSigners) Signer(_ context.Context, _ uuid.UUID, _ string) (*session.Signer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.signer, nil
}
func (f *fakeSigners) Session(_ context.Context, _ uuid.UUID) (*model.SessionKey, error) {
	if f.session == nil {
		return nil, errs.ErrNotFound
	}
	return f.session, nil
}

type fakeChain struct{ nonce string }

func (f *fakeChain) Nonce(_ context.Context, _ string) string { return f.nonce }

type fakeExecutor struct {
	lastReq executor.Request
	result  *model.TransactionResult
	err     error
}

func (f *fakeExecutor) Execute(_ context.Context, req executor.Request) (*model.TransactionResult, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeDeployer struct {
	account string
	txHash  string
	err     error
}

func (f *fakeDeployer) DeployAccount(_ context.Context, _, _ string) (string, string, error) {
	return f.account, f.txHash, f.err
}

type fakeTokens struct{}

func (fakeTokens) Token(_ context.Context, _ uuid.UUID) (string, error) { return "bearer", nil }

type fakePinner struct {
	imageURI string
	jsonURI  string
}

func (f *fakePinner) PinImage(_ context.Context, _ string, _ []byte) (string, error) {
	return f.imageURI, nil
}
func (f *fakePinner) PinJSON(_ context.Context, _ string, _ any) (string, error) {
	return f.jsonURI, nil
}

type fakeWalletRepo struct{ wallet *model.Wallet }

func (f *fakeWalletRepo) Save(_ context.Context, w *model.Wallet) error { f.wallet = w; return nil }
func (f *fakeWalletRepo) Get(_ context.Context, _ uuid.UUID) (*model.Wallet, error) {
	if f.wallet == nil {
		return nil, errs.ErrWalletNotFound
	}
	return f.wallet, nil
}

type fixture struct {
	svc     *Service
	signers *fakeSigners
	exec    *fakeExecutor
	wallets *fakeWalletRepo
	userID  uuid.UUID
	account string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	pair, err := starknet.GenerateKeypair()
	require.NoError(t, err)
	account := starknet.NormalizeAddress(pair.PublicKey)

	enc, err := crypto.EncryptKey([]byte(pair.PrivateKey), pin)
	require.NoError(t, err)
	userID := uuid.Must(uuid.NewV4())
	wallets := &fakeWalletRepo{wallet: &model.Wallet{
		UserID:              userID,
		PublicKey:           account,
		EncryptedPrivateKey: enc,
	}}

	signers := &fakeSigners{signer: session.NewSigner(account, pair.PrivateKey)}
	exec := &fakeExecutor{result: &model.TransactionResult{
		TxHash: "0x0123456789abcdef",
		Status: model.TxStatusConfirmed,
	}}
	svc := NewService(
		wallets, signers, &fakeChain{nonce: "7"}, exec,
		&fakeDeployer{account: "0xABCDEF1234", txHash: "0x0feedface000"},
		fakeTokens{}, &fakePinner{imageURI: "ipfs://img", jsonURI: "ipfs://meta"},
		marketplaceAddr, mintAddr, chainID, zap.NewNop(),
	).WithClock(func() time.Time { return time.Unix(1700000000, 0) })

	return &fixture{svc: svc, signers: signers, exec: exec, wallets: wallets, userID: userID, account: account}
}

func listingRequest() model.ListingRequest {
	return model.ListingRequest{
		AssetContract:   assetAddr,
		TokenID:         "42",
		Price:           "10.5",
		CurrencySymbol:  "STRK",
		DurationSeconds: 604800,
		Pin:             pin,
	}
}

func TestCreateListing(t *testing.T) {
	f := newFixture(t)

	res, err := f.svc.CreateListing(context.Background(), f.userID, listingRequest())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.OrderHash, "0x"))
	assert.Equal(t, model.TxStatusConfirmed, res.Result.Status)

	req := f.exec.lastReq
	require.Len(t, req.Calls, 2)

	approve := req.Calls[0]
	assert.Equal(t, starknet.NormalizeAddress(assetAddr), approve.ContractAddress)
	assert.Equal(t, "approve", approve.Entrypoint)
	assert.Equal(t, []string{marketplaceAddr, "42", "0"}, approve.Calldata)

	register := req.Calls[1]
	assert.Equal(t, marketplaceAddr, register.ContractAddress)
	assert.Equal(t, "register_order", register.Entrypoint)
	// 16 order words + signature length prefix + (r, s)
	require.Len(t, register.Calldata, 19)
	assert.Equal(t, f.account, register.Calldata[0])
	assert.Equal(t, "7", register.Calldata[15])
	assert.Equal(t, "2", register.Calldata[16])
}

func TestMakeOfferApprovesCurrency(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.MakeOffer(context.Background(), f.userID, listingRequest())
	require.NoError(t, err)

	req := f.exec.lastReq
	require.Len(t, req.Calls, 2)

	strk, ok := model.TokenBySymbol("STRK")
	require.True(t, ok)
	approve := req.Calls[0]
	assert.Equal(t, starknet.NormalizeAddress(strk.Address), approve.ContractAddress)
	// 10.5 STRK in base units
	assert.Equal(t, []string{marketplaceAddr, "10500000000000000000", "0"}, approve.Calldata)
}

func TestListingValidation(t *testing.T) {
	f := newFixture(t)

	req := listingRequest()
	req.DurationSeconds = 3600
	_, err := f.svc.CreateListing(context.Background(), f.userID, req)
	require.Error(t, err)

	req = listingRequest()
	req.CurrencySymbol = "DOGE"
	_, err = f.svc.CreateListing(context.Background(), f.userID, req)
	require.ErrorIs(t, err, errs.ErrUnsupportedCurrency)
}

func TestFulfillOrder(t *testing.T) {
	f := newFixture(t)
	orderHash := "0x0abc123def456789"

	res, err := f.svc.FulfillOrder(context.Background(), f.userID, model.FulfillRequest{
		OrderHash:           orderHash,
		ConsiderationToken:  "0x049d",
		ConsiderationAmount: "10500000",
		Pin:                 pin,
	})
	require.NoError(t, err)
	assert.Equal(t, orderHash, res.OrderHash)

	req := f.exec.lastReq
	require.Len(t, req.Calls, 2)
	assert.Equal(t, "approve", req.Calls[0].Entrypoint)
	assert.Equal(t, []string{marketplaceAddr, "10500000", "0"}, req.Calls[0].Calldata)

	fulfill := req.Calls[1]
	assert.Equal(t, "fulfill_order", fulfill.Entrypoint)
	require.Len(t, fulfill.Calldata, 6)
	assert.Equal(t, orderHash, fulfill.Calldata[0])
	assert.Equal(t, f.account, fulfill.Calldata[1])
	assert.Equal(t, "7", fulfill.Calldata[2])
	assert.Equal(t, "2", fulfill.Calldata[3])
}

func TestFulfillOrderWithoutApproval(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.FulfillOrder(context.Background(), f.userID, model.FulfillRequest{
		OrderHash: "0x0abc123def456789",
		Pin:       pin,
	})
	require.NoError(t, err)
	require.Len(t, f.exec.lastReq.Calls, 1)
	assert.Equal(t, "fulfill_order", f.exec.lastReq.Calls[0].Entrypoint)
}

func TestCancelOrder(t *testing.T) {
	f := newFixture(t)
	orderHash := "0x0abc123def456789"

	res, err := f.svc.CancelOrder(context.Background(), f.userID, model.CancelRequest{
		OrderHash: orderHash,
		Pin:       pin,
	})
	require.NoError(t, err)
	assert.Equal(t, orderHash, res.OrderHash)

	req := f.exec.lastReq
	require.Len(t, req.Calls, 1)
	cancel := req.Calls[0]
	assert.Equal(t, "cancel_order", cancel.Entrypoint)
	require.Len(t, cancel.Calldata, 6)
	assert.Equal(t, orderHash, cancel.Calldata[0])
	assert.Equal(t, f.account, cancel.Calldata[1])
}

func TestActionRequiresOrderHash(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.CancelOrder(context.Background(), f.userID, model.CancelRequest{Pin: pin})
	require.Error(t, err)
	_, err = f.svc.FulfillOrder(context.Background(), f.userID, model.FulfillRequest{Pin: pin})
	require.Error(t, err)
}

func TestExecuteCarriesSessionWallet(t *testing.T) {
	f := newFixture(t)
	f.signers.session = &model.SessionKey{
		PublicKey:           "0x02",
		EncryptedPrivateKey: "session-ct",
		ValidUntil:          time.Unix(1700000000, 0).Add(time.Hour).Unix(),
	}

	_, err := f.svc.CreateListing(context.Background(), f.userID, listingRequest())
	require.NoError(t, err)

	require.NotNil(t, f.exec.lastReq.Wallet)
	assert.Equal(t, f.account, f.exec.lastReq.Wallet.PublicKey)
	assert.Equal(t, "session-ct", f.exec.lastReq.Wallet.EncryptedPrivateKey)
}

func TestExecuteIgnoresExpiredSession(t *testing.T) {
	f := newFixture(t)
	f.signers.session = &model.SessionKey{
		PublicKey:           "0x02",
		EncryptedPrivateKey: "session-ct",
		ValidUntil:          time.Unix(1700000000, 0).Add(-time.Hour).Unix(),
	}

	_, err := f.svc.CreateListing(context.Background(), f.userID, listingRequest())
	require.NoError(t, err)
	assert.Nil(t, f.exec.lastReq.Wallet)
}

func TestCreateWallet(t *testing.T) {
	f := newFixture(t)
	f.wallets.wallet = nil
	userID := uuid.Must(uuid.NewV4())

	res, err := f.svc.CreateWallet(context.Background(), userID, pin)
	require.NoError(t, err)
	assert.Equal(t, starknet.NormalizeAddress("0xABCDEF1234"), res.Address)
	assert.Equal(t, "0x0feedface000", res.TxHash)
	assert.NotEmpty(t, res.QR)

	require.NotNil(t, f.wallets.wallet)
	assert.Equal(t, res.Address, f.wallets.wallet.PublicKey)
	key, err := crypto.DecryptKey(f.wallets.wallet.EncryptedPrivateKey, pin)
	require.NoError(t, err)
	assert.NotEmpty(t, key)
}

func TestCreateWalletRequiresPin(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.CreateWallet(context.Background(), uuid.Must(uuid.NewV4()), "")
	require.Error(t, err)
}

func TestCreateAsset(t *testing.T) {
	f := newFixture(t)

	res, err := f.svc.CreateAsset(context.Background(), f.userID, model.CreateAssetRequest{
		Name:        "Track 01",
		Description: "first release",
		IPType:      "music",
		License:     "CC-BY",
		Pin:         pin,
	})
	require.NoError(t, err)
	assert.Equal(t, "ipfs://meta", res.URI)
	assert.Equal(t, "0x0123456789abcdef", res.TxHash)

	req := f.exec.lastReq
	require.Len(t, req.Calls, 1)
	mint := req.Calls[0]
	assert.Equal(t, mintAddr, mint.ContractAddress)
	assert.Equal(t, "mint", mint.Entrypoint)
	assert.Equal(t, f.account, mint.Calldata[0])
	// "ipfs://meta" fits one short-string word
	assert.Equal(t, "1", mint.Calldata[1])
}

func TestCreateAssetMintReverted(t *testing.T) {
	f := newFixture(t)
	f.exec.result = &model.TransactionResult{
		TxHash:       "0x0123456789abcdef",
		Status:       model.TxStatusReverted,
		RevertReason: "minting paused",
	}

	_, err := f.svc.CreateAsset(context.Background(), f.userID, model.CreateAssetRequest{
		Name: "Track 01",
		Pin:  pin,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "minting paused")
}

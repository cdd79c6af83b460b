package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config contains all configuration parameters for the service.
type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	DatabaseDSN string `envconfig:"DATABASE_DSN" required:"true"`

	StarknetRPCURL      string `envconfig:"STARKNET_RPC_URL" default:"https://starknet-mainnet.public.blastapi.io/rpc/v0_7"`
	ChainID             string `envconfig:"STARKNET_CHAIN_ID" default:"SN_MAIN"`
	MarketplaceContract string `envconfig:"MARKETPLACE_CONTRACT" required:"true"`
	MintContract        string `envconfig:"MINT_CONTRACT" default:""`

	RelayURL      string `envconfig:"RELAY_URL" required:"true"`
	IdentityURL   string `envconfig:"IDENTITY_URL" required:"true"`
	TokenTemplate string `envconfig:"TOKEN_TEMPLATE" default:"chipipay"`
	JWTKey        string `envconfig:"JWT_KEY" required:"true"`

	SessionDuration time.Duration `envconfig:"SESSION_DURATION" default:"6h"`
	SessionMaxCalls int           `envconfig:"SESSION_MAX_CALLS" default:"1000"`

	ReceiptPollInterval time.Duration `envconfig:"RECEIPT_POLL_INTERVAL" default:"3s"`
	ReceiptTimeout      time.Duration `envconfig:"RECEIPT_TIMEOUT" default:"3m"`

	PinningURL     string `envconfig:"PINNING_URL" default:"https://api.pinata.cloud"`
	PinningJWT     string `envconfig:"PINNING_JWT" default:""`
	PinningGateway string `envconfig:"PINNING_GATEWAY" default:"https://gateway.pinata.cloud"`

	IndexerURL string `envconfig:"INDEXER_URL" required:"true"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	cfg = &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return fmt.Errorf("failed to process config: %w", err)
	}
	return nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// SetForTest replaces the global configuration (tests only).
func SetForTest(c *Config) { cfg = c }

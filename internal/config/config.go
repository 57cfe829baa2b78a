// Package config loads jsquiz settings from defaults, a TOML file and
// JSQUIZ_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "JSQUIZ_"

// ConfigFileName is the default config file name inside the data directory.
const ConfigFileName = "jsquiz.toml"

// DefaultContractAddress is the level-completion contract used when no
// override is configured.
const DefaultContractAddress = "0x1234567890123456789012345678901234567890"

// Config is the fully resolved configuration.
type Config struct {
	DBPath   string `env:"DB"`
	LogLevel string `env:"LOG_LEVEL"`
	BankPath string `env:"BANK_PATH"`

	Wallet   WalletConfig   `envPrefix:"WALLET_"`
	Chain    ChainConfig    `envPrefix:"CHAIN_"`
	Progress ProgressConfig `envPrefix:"PROGRESS_"`
}

// WalletConfig controls wallet discovery.
type WalletConfig struct {
	// Endpoints are JSON-RPC URLs probed in order. Empty means local-only
	// play with no transaction submission.
	Endpoints           []string      `env:"ENDPOINTS" envSeparator:","`
	DetectRetryDelay    time.Duration `env:"DETECT_RETRY_DELAY"`
	AccountPollInterval time.Duration `env:"ACCOUNT_POLL_INTERVAL"`
	AccountsTimeout     time.Duration `env:"ACCOUNTS_TIMEOUT"`
	ProbeTimeout        time.Duration `env:"PROBE_TIMEOUT"`
}

// ChainConfig holds the fixed transaction target.
type ChainConfig struct {
	// ContractAddress is checked per attempt, not at load time.
	ContractAddress string `env:"CONTRACT_ADDRESS"`
	ChainID         uint64 `env:"ID"`
	GasLimit        uint64 `env:"GAS_LIMIT"`
	AssetSymbol     string `env:"ASSET_SYMBOL"`
	AssetDecimals   int    `env:"ASSET_DECIMALS"`
}

// ProgressConfig controls the shared progress document and advancement.
type ProgressConfig struct {
	DocumentID   string        `env:"DOCUMENT_ID"`
	PollInterval time.Duration `env:"POLL_INTERVAL"`
	AdvanceDelay time.Duration `env:"ADVANCE_DELAY"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Wallet: WalletConfig{
			DetectRetryDelay:    500 * time.Millisecond,
			AccountPollInterval: 2 * time.Second,
			AccountsTimeout:     30 * time.Second,
			ProbeTimeout:        5 * time.Second,
		},
		Chain: ChainConfig{
			ContractAddress: DefaultContractAddress,
			ChainID:         8453,
			GasLimit:        100000,
			AssetSymbol:     "JSQ",
			AssetDecimals:   0,
		},
		Progress: ProgressConfig{
			DocumentID:   "global_progress",
			PollInterval: 3 * time.Second,
			AdvanceDelay: 5 * time.Second,
		},
	}
}

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error

	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Errorf("log_level %q: want debug, info, warn or error", c.LogLevel))
	}

	durations := []struct {
		name string
		d    time.Duration
	}{
		{"wallet.detect_retry_delay", c.Wallet.DetectRetryDelay},
		{"wallet.account_poll_interval", c.Wallet.AccountPollInterval},
		{"wallet.accounts_timeout", c.Wallet.AccountsTimeout},
		{"wallet.probe_timeout", c.Wallet.ProbeTimeout},
		{"progress.poll_interval", c.Progress.PollInterval},
		{"progress.advance_delay", c.Progress.AdvanceDelay},
	}
	for _, d := range durations {
		if d.d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %s", d.name, d.d))
		}
	}

	if c.Chain.GasLimit == 0 {
		errs = append(errs, errors.New("chain.gas_limit must be positive"))
	}
	if c.Chain.ChainID == 0 {
		errs = append(errs, errors.New("chain.chain_id must be set"))
	}
	if c.Progress.DocumentID == "" {
		errs = append(errs, errors.New("progress.document_id must be set"))
	}

	return errors.Join(errs...)
}

// LocalOnly reports whether no wallet endpoint is configured.
func (c *Config) LocalOnly() bool {
	return len(c.Wallet.Endpoints) == 0
}

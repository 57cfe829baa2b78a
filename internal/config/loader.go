package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config for TOML decoding. Pointer fields distinguish
// "unset" from zero values; durations are strings like "5s".
type FileConfig struct {
	DBPath   *string `toml:"db_path"`
	LogLevel *string `toml:"log_level"`
	BankPath *string `toml:"bank_path"`

	Wallet struct {
		Endpoints           []string `toml:"endpoints"`
		DetectRetryDelay    *string  `toml:"detect_retry_delay"`
		AccountPollInterval *string  `toml:"account_poll_interval"`
		AccountsTimeout     *string  `toml:"accounts_timeout"`
		ProbeTimeout        *string  `toml:"probe_timeout"`
	} `toml:"wallet"`

	Chain struct {
		ContractAddress *string `toml:"contract_address"`
		ChainID         *uint64 `toml:"chain_id"`
		GasLimit        *uint64 `toml:"gas_limit"`
		AssetSymbol     *string `toml:"asset_symbol"`
		AssetDecimals   *int    `toml:"asset_decimals"`
	} `toml:"chain"`

	Progress struct {
		DocumentID   *string `toml:"document_id"`
		PollInterval *string `toml:"poll_interval"`
		AdvanceDelay *string `toml:"advance_delay"`
	} `toml:"progress"`
}

// Loader loads configuration from file and environment over defaults.
type Loader struct {
	dataDir    string
	configPath string // explicit config path (empty = dataDir/jsquiz.toml)

	// environ overrides the process environment, for tests.
	environ map[string]string
}

// NewLoader creates a config loader.
func NewLoader(dataDir, configPath string) *Loader {
	return &Loader{dataDir: dataDir, configPath: configPath}
}

// Load loads configuration with priority: defaults < file < env.
// Flags are applied by the caller afterwards.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	fileCfg, err := l.loadFile()
	if err != nil {
		return nil, err
	}
	if fileCfg != nil {
		if err := mergeFileConfig(cfg, fileCfg); err != nil {
			return nil, err
		}
	}

	opts := env.Options{Prefix: EnvPrefix}
	if l.environ != nil {
		opts.Environment = l.environ
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}

// loadFile returns nil when no config file exists.
func (l *Loader) loadFile() (*FileConfig, error) {
	configPath := l.configPath
	explicit := configPath != ""
	if !explicit {
		if l.dataDir == "" {
			return nil, nil
		}
		configPath = filepath.Join(l.dataDir, ConfigFileName)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var fileCfg FileConfig
	if err := toml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("invalid TOML in %s: %w", configPath, err)
	}
	return &fileCfg, nil
}

// mergeFileConfig merges non-nil FileConfig values into cfg.
func mergeFileConfig(cfg *Config, file *FileConfig) error {
	if file.DBPath != nil {
		cfg.DBPath = *file.DBPath
	}
	if file.LogLevel != nil {
		cfg.LogLevel = *file.LogLevel
	}
	if file.BankPath != nil {
		cfg.BankPath = *file.BankPath
	}

	// Wallet
	if file.Wallet.Endpoints != nil {
		cfg.Wallet.Endpoints = file.Wallet.Endpoints
	}
	if err := setDuration(&cfg.Wallet.DetectRetryDelay, file.Wallet.DetectRetryDelay, "wallet.detect_retry_delay"); err != nil {
		return err
	}
	if err := setDuration(&cfg.Wallet.AccountPollInterval, file.Wallet.AccountPollInterval, "wallet.account_poll_interval"); err != nil {
		return err
	}
	if err := setDuration(&cfg.Wallet.AccountsTimeout, file.Wallet.AccountsTimeout, "wallet.accounts_timeout"); err != nil {
		return err
	}
	if err := setDuration(&cfg.Wallet.ProbeTimeout, file.Wallet.ProbeTimeout, "wallet.probe_timeout"); err != nil {
		return err
	}

	// Chain
	if file.Chain.ContractAddress != nil {
		cfg.Chain.ContractAddress = *file.Chain.ContractAddress
	}
	if file.Chain.ChainID != nil {
		cfg.Chain.ChainID = *file.Chain.ChainID
	}
	if file.Chain.GasLimit != nil {
		cfg.Chain.GasLimit = *file.Chain.GasLimit
	}
	if file.Chain.AssetSymbol != nil {
		cfg.Chain.AssetSymbol = *file.Chain.AssetSymbol
	}
	if file.Chain.AssetDecimals != nil {
		cfg.Chain.AssetDecimals = *file.Chain.AssetDecimals
	}

	// Progress
	if file.Progress.DocumentID != nil {
		cfg.Progress.DocumentID = *file.Progress.DocumentID
	}
	if err := setDuration(&cfg.Progress.PollInterval, file.Progress.PollInterval, "progress.poll_interval"); err != nil {
		return err
	}
	return setDuration(&cfg.Progress.AdvanceDelay, file.Progress.AdvanceDelay, "progress.advance_delay")
}

func setDuration(dst *time.Duration, src *string, key string) error {
	if src == nil {
		return nil
	}
	d, err := time.ParseDuration(*src)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}

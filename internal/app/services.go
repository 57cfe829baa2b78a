package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jazzmini/jsquiz/internal/config"
	"github.com/jazzmini/jsquiz/internal/quiz"
	"github.com/jazzmini/jsquiz/internal/store"
	"github.com/jazzmini/jsquiz/internal/txsubmit"
	"github.com/jazzmini/jsquiz/internal/wallet"
)

// Services are the components shared by the TUI and the CLI commands.
type Services struct {
	Config   *config.Config
	Store    *store.Store
	Progress store.ProgressRepo
	Events   store.EventRepo
	Bank     *quiz.Bank
	Detector *wallet.Detector
	Logger   *slog.Logger
}

// NewServices opens the database and loads the question bank.
func NewServices(cfg *config.Config, logger *slog.Logger) (*Services, error) {
	if logger == nil {
		logger = slog.Default()
	}

	bank, err := loadBank(cfg.BankPath)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	detector := wallet.NewDetector(cfg.Wallet.Endpoints, cfg.Wallet.DetectRetryDelay, logger)
	detector.ProbeTimeout = cfg.Wallet.ProbeTimeout
	detector.Dial = func(ctx context.Context, endpoint string) (wallet.Provider, error) {
		p, err := wallet.DialRPC(ctx, endpoint)
		if err != nil {
			return nil, err
		}
		return wallet.WithLogging(p, logger), nil
	}

	return &Services{
		Config:   cfg,
		Store:    st,
		Progress: st.ProgressRepo(cfg.Progress.DocumentID),
		Events:   st.EventRepo(),
		Bank:     bank,
		Detector: detector,
		Logger:   logger,
	}, nil
}

// NewSubmitter builds a transaction submitter that records every terminal
// attempt in the event log.
func (s *Services) NewSubmitter(opts ...txsubmit.Option) *txsubmit.Submitter {
	chain := s.Config.Chain
	cfg := txsubmit.Config{
		ContractAddress: chain.ContractAddress,
		ChainID:         chain.ChainID,
		GasLimit:        chain.GasLimit,
		AccountsTimeout: s.Config.Wallet.AccountsTimeout,
		AssetSymbol:     chain.AssetSymbol,
		AssetDecimals:   chain.AssetDecimals,
	}
	base := []txsubmit.Option{
		txsubmit.WithRecorder(s.Events),
		txsubmit.WithLogger(s.Logger),
	}
	return txsubmit.New(cfg, s.Detector, append(base, opts...)...)
}

// Close releases the database.
func (s *Services) Close() error {
	if s.Store == nil {
		return nil
	}
	return s.Store.Close()
}

func loadBank(path string) (*quiz.Bank, error) {
	if path == "" {
		return quiz.DefaultBank()
	}
	return quiz.LoadFile(path)
}

// Package txsubmit runs level-completion transaction attempts against a
// wallet provider and classifies their outcome.
package txsubmit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/google/uuid"

	"github.com/jazzmini/jsquiz/internal/store"
	"github.com/jazzmini/jsquiz/internal/txenc"
	"github.com/jazzmini/jsquiz/internal/wallet"
)

// DefaultAccountsTimeout bounds the wait for the wallet to expose accounts.
const DefaultAccountsTimeout = 30 * time.Second

// Config holds the fixed transaction parameters.
type Config struct {
	ContractAddress string
	ChainID         uint64
	GasLimit        uint64
	AccountsTimeout time.Duration
	AssetSymbol     string
	AssetDecimals   int
}

// Detector finds a wallet provider.
type Detector interface {
	TryDetect(ctx context.Context) (wallet.Provider, bool)
}

// Recorder persists terminal attempts.
type Recorder interface {
	AppendAttempt(ctx context.Context, data store.AttemptEventData) error
}

// Observer receives every status transition of an attempt.
type Observer func(Attempt)

// Submitter runs one attempt at a time. The asset registration side effect
// is tried at most once for the Submitter's lifetime.
type Submitter struct {
	cfg      Config
	detector Detector
	recorder Recorder
	observer Observer
	logger   *slog.Logger

	mu                         sync.Mutex
	inFlight                   bool
	assetRegistrationAttempted bool
}

// Option configures a Submitter.
type Option func(*Submitter)

// WithRecorder records terminal attempts to r.
func WithRecorder(r Recorder) Option { return func(s *Submitter) { s.recorder = r } }

// WithObserver calls fn on every status change.
func WithObserver(fn Observer) Option { return func(s *Submitter) { s.observer = fn } }

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option { return func(s *Submitter) { s.logger = l } }

// New creates a Submitter.
func New(cfg Config, detector Detector, opts ...Option) *Submitter {
	if cfg.AccountsTimeout <= 0 {
		cfg.AccountsTimeout = DefaultAccountsTimeout
	}
	s := &Submitter{cfg: cfg, detector: detector}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Submit runs one attempt for level. The returned Attempt is terminal. On
// failure the error is a *TxError. A call made while another attempt is
// running fails immediately with KindInFlight.
func (s *Submitter) Submit(ctx context.Context, level int) (Attempt, error) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		te := &TxError{Kind: KindInFlight}
		return Attempt{Level: level, Status: StatusFailed, Err: te, Started: time.Now(), RunID: RunIDFromContext(ctx)}, te
	}
	s.inFlight = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.inFlight = false
		s.mu.Unlock()
	}()

	a := Attempt{
		ID:      uuid.New().String(),
		Level:   level,
		Status:  StatusIdle,
		Started: time.Now(),
		RunID:   RunIDFromContext(ctx),
	}
	s.emit(a)

	hash, te := s.run(ctx, &a)
	if te != nil {
		a.Status = StatusFailed
		a.Err = te
	} else {
		a.Status = StatusSubmitted
		a.Hash = hash
	}
	s.emit(a)
	s.record(ctx, a)

	if te != nil {
		s.logger.Info("level submission failed", "attempt", a.ID, "level", level, "kind", te.Kind, "error", te)
		return a, te
	}
	s.logger.Info("level submission accepted", "attempt", a.ID, "level", level, "hash", hash)
	return a, nil
}

// InFlight reports whether an attempt is running.
func (s *Submitter) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

func (s *Submitter) run(ctx context.Context, a *Attempt) (string, *TxError) {
	if !ValidAddress(s.cfg.ContractAddress) {
		return "", &TxError{Kind: KindConfig, Message: fmt.Sprintf("invalid contract address %q", s.cfg.ContractAddress)}
	}

	a.Status = StatusAwaitingWallet
	s.emit(*a)

	p, ok := s.detector.TryDetect(ctx)
	if !ok {
		return "", &TxError{Kind: KindNoWallet, Message: "no wallet provider detected"}
	}
	if c, ok := p.(interface{ Close() }); ok {
		defer c.Close()
	}

	accounts, err := s.requestAccounts(ctx, p)
	if err != nil {
		return "", classifyAccountsError(err)
	}
	if len(accounts) == 0 {
		return "", &TxError{Kind: KindNoAccount, Message: "wallet returned no accounts"}
	}
	a.Account = accounts[0]
	a.Status = StatusConnected
	s.emit(*a)

	s.registerAsset(ctx, p)

	a.Status = StatusEncoding
	s.emit(*a)
	data, err := txenc.Encode(txenc.ActionCompleteLevel, a.Level)
	if err != nil {
		return "", &TxError{Kind: KindEncoding, Message: err.Error(), Err: err}
	}

	return s.send(ctx, p, a.Account, data)
}

// requestAccounts races the account request against AccountsTimeout. The
// request context is cancelled on return so a late reply is discarded.
func (s *Submitter) requestAccounts(ctx context.Context, p wallet.Provider) ([]string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type result struct {
		accounts []string
		err      error
	}
	done := make(chan result, 1)
	go func() {
		accounts, err := wallet.RequestAccounts(ctx, p)
		done <- result{accounts, err}
	}()

	timer := time.NewTimer(s.cfg.AccountsTimeout)
	defer timer.Stop()

	select {
	case r := <-done:
		return r.accounts, r.err
	case <-timer.C:
		return nil, errAccountsTimeout
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

var errAccountsTimeout = errors.New("account request timed out")

func (s *Submitter) registerAsset(ctx context.Context, p wallet.Provider) {
	s.mu.Lock()
	attempted := s.assetRegistrationAttempted
	s.assetRegistrationAttempted = true
	s.mu.Unlock()
	if attempted {
		return
	}

	params := map[string]any{
		"type": "ERC20",
		"options": map[string]any{
			"address":  s.cfg.ContractAddress,
			"symbol":   s.cfg.AssetSymbol,
			"decimals": s.cfg.AssetDecimals,
		},
	}
	if _, err := p.Request(ctx, wallet.RequestArgs{Method: wallet.MethodWatchAsset, Params: []any{params}}); err != nil {
		s.logger.Warn("asset registration failed", "contract", s.cfg.ContractAddress, "error", err)
	}
}

func (s *Submitter) send(ctx context.Context, p wallet.Provider, from, data string) (string, *TxError) {
	tx := map[string]any{
		"from":    from,
		"to":      s.cfg.ContractAddress,
		"gas":     hexutil.EncodeUint64(s.cfg.GasLimit),
		"value":   "0x0",
		"data":    data,
		"chainId": hexutil.EncodeUint64(s.cfg.ChainID),
	}

	raw, err := p.Request(ctx, wallet.RequestArgs{Method: wallet.MethodSendTransaction, Params: []any{tx}})
	if err != nil {
		return "", classifySendError(err)
	}

	var hash string
	if err := json.Unmarshal(raw, &hash); err != nil || hash == "" {
		return "", &TxError{Kind: KindInvalidResponse, Message: truncate(string(raw), maxMessageLen)}
	}
	return hash, nil
}

func classifyAccountsError(err error) *TxError {
	switch {
	case errors.Is(err, errAccountsTimeout):
		return &TxError{Kind: KindTimeout, Message: err.Error(), Err: err}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return &TxError{Kind: KindTimeout, Message: err.Error(), Err: err}
	}
	if code, ok := wallet.ErrorCode(err); ok && code == wallet.CodeUserRejected {
		return &TxError{Kind: KindUserRejected, Message: truncate(providerMessage(err), maxMessageLen), Err: err}
	}
	return &TxError{Kind: KindProvider, Message: truncate(providerMessage(err), maxMessageLen), Err: err}
}

func classifySendError(err error) *TxError {
	msg := providerMessage(err)
	if code, ok := wallet.ErrorCode(err); ok && code == wallet.CodeUserRejected {
		return &TxError{Kind: KindUserRejected, Message: truncate(msg, maxMessageLen), Err: err}
	}
	if strings.Contains(strings.ToLower(msg), "insufficient funds") {
		return &TxError{Kind: KindInsufficientFunds, Message: truncate(msg, maxMessageLen), Err: err}
	}
	return &TxError{Kind: KindProvider, Message: truncate(msg, maxMessageLen), Err: err}
}

func providerMessage(err error) string {
	var pe *wallet.ProviderError
	if errors.As(err, &pe) && pe.Message != "" {
		return pe.Message
	}
	return err.Error()
}

// ValidAddress reports whether addr is a 0x-prefixed 20-byte hex address.
func ValidAddress(addr string) bool {
	return strings.HasPrefix(addr, "0x") && common.IsHexAddress(addr)
}

func (s *Submitter) emit(a Attempt) {
	if s.observer != nil {
		s.observer(a)
	}
}

func (s *Submitter) record(ctx context.Context, a Attempt) {
	if s.recorder == nil {
		return
	}
	data := store.AttemptEventData{
		AttemptID: a.ID,
		Level:     a.Level,
		Status:    a.Status.String(),
		TxHash:    a.Hash,
		Account:   a.Account,
		LatencyMs: a.Elapsed().Milliseconds(),
	}
	if a.Err != nil {
		data.ErrorKind = string(a.Err.Kind)
		data.ErrorMessage = a.Err.Message
	}
	// Recording is best effort; the attempt outcome stands either way.
	if err := s.recorder.AppendAttempt(context.WithoutCancel(ctx), data); err != nil {
		s.logger.Warn("failed to record attempt", "attempt", a.ID, "error", err)
	}
}

package txsubmit

import (
	"context"
	"time"
)

// Status is the lifecycle stage of one attempt.
type Status int

const (
	StatusIdle Status = iota
	StatusAwaitingWallet
	StatusConnected
	StatusEncoding
	StatusSubmitted
	StatusFailed
)

var statusNames = [...]string{"idle", "awaiting_wallet", "connected", "encoding", "submitted", "failed"}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}

// Terminal reports whether no further transition can happen.
func (s Status) Terminal() bool {
	return s == StatusSubmitted || s == StatusFailed
}

// Attempt is one end-to-end try at submitting a level completion.
type Attempt struct {
	ID      string
	Level   int
	Status  Status
	Hash    string
	Err     *TxError
	Started time.Time
	Account string
	// RunID is copied from the Submit context, see ContextWithRunID.
	RunID string
}

type runIDKey struct{}

// ContextWithRunID tags every Attempt produced by Submit under ctx with id,
// so observers can tell which quiz run an attempt belongs to.
func ContextWithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

// RunIDFromContext returns the id set by ContextWithRunID, or "".
func RunIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey{}).(string)
	return id
}

// Message is the status line for the attempt's current stage.
func (a Attempt) Message() string {
	switch a.Status {
	case StatusAwaitingWallet:
		return "Waiting for wallet..."
	case StatusConnected:
		return "Wallet connected."
	case StatusEncoding:
		return "Preparing transaction..."
	case StatusSubmitted:
		return "Level completion submitted: " + a.Hash
	case StatusFailed:
		if a.Err != nil {
			return a.Err.Status()
		}
		return "Transaction failed."
	}
	return ""
}

// Elapsed is the time since the attempt started.
func (a Attempt) Elapsed() time.Duration {
	return time.Since(a.Started)
}

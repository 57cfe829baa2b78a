package txsubmit

import (
	"errors"
	"fmt"
)

// Kind classifies why an attempt failed.
type Kind string

const (
	KindConfig            Kind = "config_error"
	KindNoWallet          Kind = "no_wallet"
	KindNoAccount         Kind = "no_account"
	KindTimeout           Kind = "timeout"
	KindUserRejected      Kind = "user_rejected"
	KindInsufficientFunds Kind = "insufficient_funds"
	KindInvalidResponse   Kind = "invalid_response"
	KindProvider          Kind = "provider_error"
	KindEncoding          Kind = "encoding_error"
	KindInFlight          Kind = "in_flight"
)

// maxMessageLen bounds provider messages carried into status strings.
const maxMessageLen = 100

// TxError is the only error type returned by Submit.
type TxError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *TxError) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *TxError) Unwrap() error { return e.Err }

// Retryable reports whether the same attempt may simply be run again.
func (e *TxError) Retryable() bool {
	switch e.Kind {
	case KindTimeout, KindInvalidResponse, KindProvider, KindInFlight:
		return true
	}
	return false
}

// UserActionable reports whether the user must do something outside the
// app (install a wallet, approve, fund) before retrying helps.
func (e *TxError) UserActionable() bool {
	switch e.Kind {
	case KindNoWallet, KindNoAccount, KindUserRejected, KindInsufficientFunds:
		return true
	}
	return false
}

// Defect reports whether the failure indicates bad configuration or a
// programming error rather than anything the user can fix.
func (e *TxError) Defect() bool {
	return e.Kind == KindConfig || e.Kind == KindEncoding
}

// Status is the short human-readable line shown for the failure.
func (e *TxError) Status() string {
	switch e.Kind {
	case KindConfig:
		return "Contract address is misconfigured."
	case KindNoWallet:
		return "No wallet found. Install or start a wallet and retry."
	case KindNoAccount:
		return "No account available. Unlock or connect an account."
	case KindTimeout:
		return "Wallet did not respond in time. Retry to try again."
	case KindUserRejected:
		return "Transaction rejected in wallet."
	case KindInsufficientFunds:
		return "Insufficient funds for gas. Fund your wallet and retry."
	case KindInvalidResponse:
		if e.Message == "" {
			return "Wallet returned an invalid response."
		}
		return "Wallet returned an invalid response: " + truncate(e.Message, maxMessageLen)
	case KindInFlight:
		return "A submission is already in progress."
	case KindEncoding:
		return "Internal error preparing the transaction."
	}
	return "Transaction failed: " + truncate(e.Message, maxMessageLen)
}

// KindOf returns the Kind carried by err, or "" when err is not a TxError.
func KindOf(err error) Kind {
	var te *TxError
	if errors.As(err, &te) {
		return te.Kind
	}
	return ""
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

package wallet

import (
	"context"
	"encoding/json"
)

// Provider is the single capability an injected wallet exposes: a
// JSON-RPC style request/response call.
type Provider interface {
	// Request sends method with params and returns the raw result.
	// Failures reported by the wallet are returned as *ProviderError.
	Request(ctx context.Context, args RequestArgs) (json.RawMessage, error)

	// Name identifies the provider, e.g. its endpoint or a mock label.
	Name() string
}

// RequestArgs is the argument to Provider.Request.
type RequestArgs struct {
	Method string
	Params []any
}

// JSON-RPC methods used by the app.
const (
	MethodAccounts        = "eth_accounts"
	MethodRequestAccounts = "eth_requestAccounts"
	MethodSendTransaction = "eth_sendTransaction"
	MethodWatchAsset      = "wallet_watchAsset"
	MethodChainID         = "eth_chainId"
	MethodClientVersion   = "web3_clientVersion"
)

// Provider notifications.
const (
	EventConnect         = "connect"
	EventAccountsChanged = "accountsChanged"
)

// Event is a provider notification. Accounts is set for accountsChanged;
// an empty slice means the wallet disconnected.
type Event struct {
	Name     string
	Accounts []string
}

package wallet

import (
	"context"
	"encoding/json"
	"fmt"
)

// RequestAccounts asks the wallet to expose accounts, prompting the user if
// needed. Provider errors are returned unchanged so callers can inspect the code.
func RequestAccounts(ctx context.Context, p Provider) ([]string, error) {
	return accounts(ctx, p, MethodRequestAccounts)
}

// GetConnectedAccounts returns the accounts already exposed to the app
// without prompting.
func GetConnectedAccounts(ctx context.Context, p Provider) ([]string, error) {
	return accounts(ctx, p, MethodAccounts)
}

func accounts(ctx context.Context, p Provider, method string) ([]string, error) {
	raw, err := p.Request(ctx, RequestArgs{Method: method})
	if err != nil {
		return nil, err
	}
	var addrs []string
	if len(raw) == 0 || string(raw) == "null" {
		return addrs, nil
	}
	if err := json.Unmarshal(raw, &addrs); err != nil {
		return nil, fmt.Errorf("decode %s result: %w", method, err)
	}
	return addrs, nil
}

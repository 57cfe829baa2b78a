package wallet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/rpc"
)

// RPCProvider is a Provider backed by a JSON-RPC endpoint (HTTP, WS or IPC),
// typically a local wallet bridge or a dev node with unlocked accounts.
type RPCProvider struct {
	endpoint string
	client   *rpc.Client
}

// DialRPC connects to endpoint. For HTTP endpoints no request is made
// until the first call.
func DialRPC(ctx context.Context, endpoint string) (*RPCProvider, error) {
	client, err := rpc.DialContext(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", endpoint, err)
	}
	return &RPCProvider{endpoint: endpoint, client: client}, nil
}

func (p *RPCProvider) Request(ctx context.Context, args RequestArgs) (json.RawMessage, error) {
	var result json.RawMessage
	if err := p.client.CallContext(ctx, &result, args.Method, args.Params...); err != nil {
		var rpcErr rpc.Error
		if errors.As(err, &rpcErr) {
			return nil, &ProviderError{Code: rpcErr.ErrorCode(), Message: rpcErr.Error()}
		}
		return nil, fmt.Errorf("%s: %w", args.Method, err)
	}
	return result, nil
}

func (p *RPCProvider) Name() string { return p.endpoint }

// Close releases the underlying client.
func (p *RPCProvider) Close() { p.client.Close() }

package wallet

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"
)

// DialFunc opens a provider for endpoint.
type DialFunc func(ctx context.Context, endpoint string) (Provider, error)

func dialRPC(ctx context.Context, endpoint string) (Provider, error) {
	return DialRPC(ctx, endpoint)
}

// DefaultProbeTimeout bounds each dial and probe when ProbeTimeout is unset.
const DefaultProbeTimeout = 5 * time.Second

// Detector locates a usable wallet among the configured endpoints.
type Detector struct {
	Endpoints  []string
	RetryDelay time.Duration
	// ProbeTimeout bounds the dial and request made against each endpoint.
	// An endpoint that does not answer in time counts as absent.
	ProbeTimeout time.Duration
	Dial         DialFunc
	Logger       *slog.Logger
}

// NewDetector returns a Detector that dials endpoints over JSON-RPC.
func NewDetector(endpoints []string, retryDelay time.Duration, logger *slog.Logger) *Detector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Detector{
		Endpoints:    endpoints,
		RetryDelay:   retryDelay,
		ProbeTimeout: DefaultProbeTimeout,
		Dial:         dialRPC,
		Logger:       logger,
	}
}

// TryDetect returns the first endpoint that answers a chain id probe.
// Wallets may appear late, so one more pass is made after RetryDelay.
// Every failure is treated as "no wallet".
func (d *Detector) TryDetect(ctx context.Context) (Provider, bool) {
	if p, ok := d.probeAll(ctx); ok {
		return p, true
	}
	if d.RetryDelay <= 0 || len(d.Endpoints) == 0 {
		return nil, false
	}

	timer := time.NewTimer(d.RetryDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return nil, false
	case <-timer.C:
	}
	return d.probeAll(ctx)
}

func (d *Detector) probeAll(ctx context.Context) (Provider, bool) {
	for _, endpoint := range d.Endpoints {
		if ctx.Err() != nil {
			return nil, false
		}
		if p, ok := d.probe(ctx, endpoint); ok {
			return p, true
		}
	}
	return nil, false
}

func (d *Detector) probe(ctx context.Context, endpoint string) (Provider, bool) {
	ctx, cancel := context.WithTimeout(ctx, d.probeTimeout())
	defer cancel()

	p, err := d.dial(ctx, endpoint)
	if err != nil {
		d.logger().Debug("wallet dial failed", "endpoint", endpoint, "error", err)
		return nil, false
	}
	if _, err := p.Request(ctx, RequestArgs{Method: MethodChainID}); err != nil {
		d.logger().Debug("wallet probe failed", "endpoint", endpoint, "error", err)
		closeProvider(p)
		return nil, false
	}
	return p, true
}

// ListAvailableWallets returns labels for every reachable endpoint, derived
// from the client version string. It never fails; unreachable endpoints are
// skipped.
func (d *Detector) ListAvailableWallets(ctx context.Context) []string {
	seen := make(map[string]struct{})
	for _, endpoint := range d.Endpoints {
		if label, ok := d.clientLabel(ctx, endpoint); ok {
			seen[label] = struct{}{}
		}
	}

	labels := make([]string, 0, len(seen))
	for l := range seen {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

func (d *Detector) clientLabel(ctx context.Context, endpoint string) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, d.probeTimeout())
	defer cancel()

	p, err := d.dial(ctx, endpoint)
	if err != nil {
		return "", false
	}
	defer closeProvider(p)
	raw, err := p.Request(ctx, RequestArgs{Method: MethodClientVersion})
	if err != nil {
		return "", false
	}
	return walletLabel(strings.Trim(string(raw), `"`)), true
}

func (d *Detector) probeTimeout() time.Duration {
	if d.ProbeTimeout <= 0 {
		return DefaultProbeTimeout
	}
	return d.ProbeTimeout
}

func (d *Detector) dial(ctx context.Context, endpoint string) (Provider, error) {
	if d.Dial == nil {
		return dialRPC(ctx, endpoint)
	}
	return d.Dial(ctx, endpoint)
}

func (d *Detector) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.Default()
	}
	return d.Logger
}

var knownWallets = []struct {
	marker string
	label  string
}{
	{"metamask", "MetaMask"},
	{"coinbase", "Coinbase Wallet"},
	{"rabby", "Rabby"},
	{"frame", "Frame"},
	{"anvil", "Anvil"},
	{"hardhat", "Hardhat"},
	{"ganache", "Ganache"},
	{"geth", "Geth"},
}

// walletLabel maps a web3_clientVersion string to a display label.
func walletLabel(clientVersion string) string {
	lower := strings.ToLower(clientVersion)
	for _, w := range knownWallets {
		if strings.Contains(lower, w.marker) {
			return w.label
		}
	}
	if clientVersion == "" {
		return "Unknown"
	}
	if i := strings.IndexByte(clientVersion, '/'); i > 0 {
		return clientVersion[:i]
	}
	return clientVersion
}

func closeProvider(p Provider) {
	if c, ok := p.(interface{ Close() }); ok {
		c.Close()
	}
}

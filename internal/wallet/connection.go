package wallet

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"
)

// ErrNoProvider is returned by Connect when no wallet can be detected.
var ErrNoProvider = errors.New("no wallet provider detected")

// Connection tracks the connected address and the labels of reachable
// wallets. The address is written only by HandleEvent, Connect and Refresh.
type Connection struct {
	mu        sync.RWMutex
	address   string
	providers []string
	logger    *slog.Logger
}

// NewConnection returns an empty, disconnected Connection.
func NewConnection(logger *slog.Logger) *Connection {
	if logger == nil {
		logger = slog.Default()
	}
	return &Connection{logger: logger}
}

// Address returns the connected account, or "" when disconnected.
func (c *Connection) Address() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.address
}

// Connected reports whether an account is set.
func (c *Connection) Connected() bool {
	return c.Address() != ""
}

// Providers returns the labels found on the last Refresh.
func (c *Connection) Providers() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.providers)
}

// Refresh repopulates the provider labels and, without prompting, the
// connected address.
func (c *Connection) Refresh(ctx context.Context, d *Detector) {
	labels := d.ListAvailableWallets(ctx)

	var address string
	if p, ok := d.TryDetect(ctx); ok {
		if addrs, err := GetConnectedAccounts(ctx, p); err == nil && len(addrs) > 0 {
			address = addrs[0]
		}
		closeProvider(p)
	}

	c.mu.Lock()
	c.providers = labels
	c.address = address
	c.mu.Unlock()
}

// Connect prompts the wallet for accounts and records the first one.
func (c *Connection) Connect(ctx context.Context, p Provider) (string, error) {
	addrs, err := RequestAccounts(ctx, p)
	if err != nil {
		return "", err
	}
	c.setAddress(addrs)
	return c.Address(), nil
}

// HandleEvent applies a provider notification.
func (c *Connection) HandleEvent(ev Event) {
	switch ev.Name {
	case EventAccountsChanged:
		c.setAddress(ev.Accounts)
	case EventConnect:
		c.logger.Debug("wallet connected")
	}
}

// Run applies events until the channel closes or ctx is done.
func (c *Connection) Run(ctx context.Context, events <-chan Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			c.HandleEvent(ev)
		}
	}
}

func (c *Connection) setAddress(addrs []string) {
	var next string
	if len(addrs) > 0 {
		next = addrs[0]
	}

	c.mu.Lock()
	prev := c.address
	c.address = next
	c.mu.Unlock()

	if prev != next {
		c.logger.Info("wallet account changed", "from", prev, "to", next)
	}
}

// PollEvents emits connect once, then accountsChanged whenever the passive
// account list differs from the previous poll. JSON-RPC endpoints have no
// push channel for account changes, so they are observed by polling.
// The channel closes when ctx is done.
func PollEvents(ctx context.Context, p Provider, interval time.Duration) <-chan Event {
	events := make(chan Event, 1)
	go func() {
		defer close(events)

		send := func(ev Event) bool {
			select {
			case events <- ev:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if !send(Event{Name: EventConnect}) {
			return
		}

		var last []string
		first := true
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			addrs, err := GetConnectedAccounts(ctx, p)
			if err == nil && (first || !slices.Equal(addrs, last)) {
				if !send(Event{Name: EventAccountsChanged, Accounts: addrs}) {
					return
				}
				last, first = addrs, false
			}
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
	return events
}

package wallet

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

// LoggingProvider is a decorator that logs every request at debug level.
type LoggingProvider struct {
	inner  Provider
	logger *slog.Logger
}

// WithLogging wraps p with request logging.
func WithLogging(p Provider, logger *slog.Logger) Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingProvider{inner: p, logger: logger}
}

func (l *LoggingProvider) Request(ctx context.Context, args RequestArgs) (json.RawMessage, error) {
	start := time.Now()
	result, err := l.inner.Request(ctx, args)

	attrs := []any{
		"provider", l.inner.Name(),
		"method", args.Method,
		"latency_ms", time.Since(start).Milliseconds(),
	}
	if err != nil {
		if code, ok := ErrorCode(err); ok {
			attrs = append(attrs, "code", code)
		}
		attrs = append(attrs, "error", err)
	}
	l.logger.DebugContext(ctx, "wallet request", attrs...)

	return result, err
}

func (l *LoggingProvider) Name() string { return l.inner.Name() }

// Close closes the wrapped provider when it supports it.
func (l *LoggingProvider) Close() { closeProvider(l.inner) }

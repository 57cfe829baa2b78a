package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo backed by SQLite and the global sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

var attemptColumns = []string{
	"sequence", "timestamp", "attempt_id", "level", "status",
	"tx_hash", "account", "error_kind", "error_message", "latency_ms",
}

func (r *eventRepo) AppendAttempt(ctx context.Context, data AttemptEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(tableAttempts).
		Columns(attemptColumns...).
		Values(
			seqNum,
			time.Now().UnixMilli(),
			data.AttemptID,
			data.Level,
			data.Status,
			data.TxHash,
			data.Account,
			data.ErrorKind,
			data.ErrorMessage,
			data.LatencyMs,
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save attempt event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAttempts(ctx context.Context, opts QueryOpts) ([]AttemptEvent, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(attemptColumns...).
		From(entsql.Table(tableAttempts)).
		OrderBy(entsql.Desc("sequence"))

	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("timestamp", opts.To.UnixMilli()))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempt events: %w", err)
	}
	defer rows.Close()

	var events []AttemptEvent
	for rows.Next() {
		var (
			e  AttemptEvent
			ts int64
		)
		if err := rows.Scan(
			&e.Sequence, &ts, &e.AttemptID, &e.Level, &e.Status,
			&e.TxHash, &e.Account, &e.ErrorKind, &e.ErrorMessage, &e.LatencyMs,
		); err != nil {
			return nil, fmt.Errorf("scan attempt event: %w", err)
		}
		e.Timestamp = time.UnixMilli(ts)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempt events: %w", err)
	}
	return events, nil
}

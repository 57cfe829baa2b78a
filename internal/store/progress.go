package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/jazzmini/jsquiz/internal/quiz"
)

type progressRepo struct {
	db    *sql.DB
	docID string
	hub   *notifier
}

func (r *progressRepo) Get(ctx context.Context) (quiz.GlobalStats, error) {
	stats, err := r.read(ctx)
	if err == nil {
		return stats, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return quiz.GlobalStats{}, err
	}

	initial := quiz.InitialStats()
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(tableProgress).
		Columns("id", "max_score", "highest_level", "updated_at").
		Values(r.docID, initial.MaxScore, initial.HighestLevel, time.Now().UnixMilli()).
		OnConflict(entsql.ConflictColumns("id"), entsql.DoNothing()).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return quiz.GlobalStats{}, fmt.Errorf("initialize progress %q: %w", r.docID, err)
	}
	// Another writer may have created the document first.
	return r.read(ctx)
}

func (r *progressRepo) Raise(ctx context.Context, stats quiz.GlobalStats) (quiz.GlobalStats, error) {
	stats = stats.Normalize()
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(tableProgress).
		Columns("id", "max_score", "highest_level", "updated_at").
		Values(r.docID, stats.MaxScore, stats.HighestLevel, time.Now().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("id"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.Set("max_score", entsql.Expr("MAX(max_score, excluded.max_score)"))
				u.Set("highest_level", entsql.Expr("MAX(highest_level, excluded.highest_level)"))
				u.SetExcluded("updated_at")
			}),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return quiz.GlobalStats{}, fmt.Errorf("raise progress %q: %w", r.docID, err)
	}
	r.hub.broadcast()
	return r.read(ctx)
}

func (r *progressRepo) Reset(ctx context.Context) error {
	initial := quiz.InitialStats()
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(tableProgress).
		Columns("id", "max_score", "highest_level", "updated_at").
		Values(r.docID, initial.MaxScore, initial.HighestLevel, time.Now().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("id"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("reset progress %q: %w", r.docID, err)
	}
	r.hub.broadcast()
	return nil
}

func (r *progressRepo) Watch(ctx context.Context, interval time.Duration, fn func(quiz.GlobalStats)) error {
	local, unsubscribe := r.hub.subscribe()
	defer unsubscribe()

	current, err := r.Get(ctx)
	if err != nil {
		return err
	}
	fn(current)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-local:
		case <-ticker.C:
		}

		next, err := r.read(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			// Transient read errors are retried on the next tick.
			continue
		}
		if next != current {
			current = next
			fn(current)
		}
	}
}

func (r *progressRepo) read(ctx context.Context) (quiz.GlobalStats, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("max_score", "highest_level").
		From(entsql.Table(tableProgress)).
		Where(entsql.EQ("id", r.docID)).
		Query()

	var stats quiz.GlobalStats
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&stats.MaxScore, &stats.HighestLevel)
	if errors.Is(err, sql.ErrNoRows) {
		return quiz.GlobalStats{}, err
	}
	if err != nil {
		return quiz.GlobalStats{}, fmt.Errorf("read progress %q: %w", r.docID, err)
	}
	return stats.Normalize(), nil
}

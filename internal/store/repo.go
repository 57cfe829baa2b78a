package store

import (
	"context"
	"time"

	"github.com/jazzmini/jsquiz/internal/quiz"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// ProgressRepo is the shared high-score and unlock document.
type ProgressRepo interface {
	// Get returns the document, writing the initial {0, 1} record when
	// it does not exist yet.
	Get(ctx context.Context) (quiz.GlobalStats, error)

	// Raise merges stats into the document: each field becomes the max of
	// its stored and given value. It returns the merged document.
	Raise(ctx context.Context, stats quiz.GlobalStats) (quiz.GlobalStats, error)

	// Reset overwrites the document with the initial record.
	Reset(ctx context.Context) error

	// Watch calls fn with the current document, then again whenever it
	// changes, until ctx is done. Local writes are seen immediately;
	// writes from other processes on the next poll.
	Watch(ctx context.Context, interval time.Duration, fn func(quiz.GlobalStats)) error
}

// AttemptEventData captures one terminal transaction attempt.
type AttemptEventData struct {
	AttemptID    string
	Level        int
	Status       string
	TxHash       string
	Account      string
	ErrorKind    string
	ErrorMessage string
	LatencyMs    int64
}

// AttemptEvent is a stored AttemptEventData with its ordering metadata.
type AttemptEvent struct {
	Sequence  int64
	Timestamp time.Time
	AttemptEventData
}

// EventRepo provides append and query access to the attempt log.
type EventRepo interface {
	// AppendAttempt records a finished transaction attempt.
	AppendAttempt(ctx context.Context, data AttemptEventData) error

	// QueryAttempts returns attempts newest first.
	QueryAttempts(ctx context.Context, opts QueryOpts) ([]AttemptEvent, error)
}

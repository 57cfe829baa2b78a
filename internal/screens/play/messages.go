package play

import (
	"github.com/jazzmini/jsquiz/internal/progression"
	"github.com/jazzmini/jsquiz/internal/txsubmit"
)

// TxStatusMsg carries an attempt transition from the submitter. The
// attempt's RunID is the session run that requested it.
type TxStatusMsg struct {
	Attempt txsubmit.Attempt
}

// AutoAdvanceMsg is sent when the post-submission delay elapses.
type AutoAdvanceMsg struct {
	Level int
}

// outcomeMsg is sent when a submission or its retry returns.
type outcomeMsg struct {
	SessionID string
	Outcome   progression.Outcome
	Err       error
}

// Package errs defines the oracle's error taxonomy, following the same
// sentinel + fmt.Errorf("%w: ...") wrapping convention used throughout
// the gtm package.
package errs

import "errors"

var (
	// ErrConfig marks a fatal startup error: an unparseable container,
	// specification, or parameter table.
	ErrConfig = errors.New("configuration error")

	// ErrInput marks a bad per-request input: an unparseable URL or a
	// missing page handle when one was required.
	ErrInput = errors.New("invalid input")

	// ErrDomQuery marks a failed DOM selector query. Callers treat this
	// as "zero matches" and attach it as a warning to the event decision
	// rather than aborting the analysis.
	ErrDomQuery = errors.New("dom query failed")

	// ErrVision marks a failed or unparseable vision service call.
	// Degrades per the Stage 8 failure table rather than aborting.
	ErrVision = errors.New("vision service error")
)

// ConsistencyWarning is a non-fatal signal attached to analysis output:
// conflicting page-type signals, or a parameter whose predicted source
// disagrees with an observation.
type ConsistencyWarning struct {
	Stage   string
	Subject string
	Detail  string
}

func (w *ConsistencyWarning) Error() string {
	return w.Stage + ": " + w.Subject + ": " + w.Detail
}

// StageError wraps one of the sentinel errors above with the stage at
// which it occurred, the offending input, and the degraded verdict the
// engine chose — the three fields every user-visible error must carry.
type StageError struct {
	Stage    string
	Input    string
	Degraded string
	Err      error
}

func (e *StageError) Error() string {
	return e.Stage + ": " + e.Err.Error() + " (input=" + e.Input + ", degraded=" + e.Degraded + ")"
}

func (e *StageError) Unwrap() error { return e.Err }

// NewStageError builds a StageError wrapping one of the sentinels.
func NewStageError(stage string, err error, input, degraded string) *StageError {
	return &StageError{Stage: stage, Input: input, Degraded: degraded, Err: err}
}

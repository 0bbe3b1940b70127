package scoring

import "errors"

// Sentinel kinds for scoring errors.
var (
	// ErrNoActions signals that an aggregate is undefined because the
	// action log is empty. Callers must branch rather than report 0.0.
	ErrNoActions = errors.New("no actions to aggregate")
)

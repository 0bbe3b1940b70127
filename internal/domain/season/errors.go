package season

import "errors"

// Sentinel kinds for season errors.
var (
	// ErrNoHistory signals that no season rating is defined because the
	// player has no saved ratings yet.
	ErrNoHistory = errors.New("no rating history")
)

package rating

import "errors"

// Sentinel kinds for rating errors.
var (
	ErrUnknownRole    = errors.New("unknown role")
	ErrInvalidWeights = errors.New("invalid role weights")
)

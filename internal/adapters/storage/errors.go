package storage

import "errors"

// Sentinel kinds for persistence errors.
var (
	ErrSaveState = errors.New("save state failed")
	ErrLoadState = errors.New("load state failed")
)

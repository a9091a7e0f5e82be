package repository

import "errors"

// Sentinel kinds for patient store errors.
var (
	ErrNotFound = errors.New("patient not found")
)

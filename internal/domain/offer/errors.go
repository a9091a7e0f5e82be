package offer

import "errors"

// Sentinel kinds for offer rendering.
var (
	ErrRender = errors.New("render offer failed")
)

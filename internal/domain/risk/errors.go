package risk

import "errors"

// Sentinel kinds for risk category lookups.
var (
	ErrUnknownCategory = errors.New("unknown risk category")
)

package admission

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrFeatureMismatch reports that a vector, scaler or model disagrees on
	// the number or order of feature columns. It is never recovered from.
	ErrFeatureMismatch = errors.New("feature count mismatch")
	ErrInvalidModel    = errors.New("invalid model")
)

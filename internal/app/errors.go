package service

import "errors"

var (
	// ErrNotStarted is returned when a prediction is requested before Start
	// has loaded the artifacts.
	ErrNotStarted = errors.New("service not started")
	// ErrNonFinite is returned when the model produces NaN for a profile.
	ErrNonFinite = errors.New("prediction is not a finite number")
)

package api

import (
	"errors"
	"fmt"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
	ErrValidation = errors.New("validation failed")
	ErrPrediction = errors.New("prediction failed")

	errTrailingData = errors.New("trailing data after JSON body")
)

// wrapKind tags err with the operation and the sentinel kind so handlers
// and logs agree on what failed.
func wrapKind(op string, kind, err error) error {
	if err == nil {
		return fmt.Errorf("%s: %w", op, kind)
	}
	return fmt.Errorf("%s: %w: %w", op, kind, err)
}

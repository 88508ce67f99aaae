package loadcheck

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/okian/gradpredict/internal/domain/catalog"
)

// ErrViolation marks a response that breaks a pipeline guarantee.
var ErrViolation = errors.New("invariant violated")

// verifyResponse checks one response against the catalog: the percentage is
// in range and the recommendations are exactly the catalog rows at or below
// it, in catalog order.
func verifyResponse(resp PredictResponse, colleges []catalog.Entry) error {
	pct := resp.AdmissionPercentage
	if pct < 0 || pct > 100 {
		return fmt.Errorf("%w: percentage %v outside 0-100", ErrViolation, pct)
	}
	want := catalog.Recommend(pct, colleges)
	if len(want) == 0 && len(resp.RecommendedColleges) == 0 {
		return nil
	}
	if !reflect.DeepEqual(want, resp.RecommendedColleges) {
		return fmt.Errorf("%w: %d colleges recommended at %v, want %d",
			ErrViolation, len(resp.RecommendedColleges), pct, len(want))
	}
	return nil
}

// verifyRepeat checks that a profile submitted twice got the same answer.
func verifyRepeat(first, second PredictResponse) error {
	if first.AdmissionPercentage != second.AdmissionPercentage {
		return fmt.Errorf("%w: same profile predicted %v then %v",
			ErrViolation, first.AdmissionPercentage, second.AdmissionPercentage)
	}
	return nil
}

package admission

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Scaler applies a pre-fitted standardization: (x - mean) / scale per column.
// A Scaler is immutable after construction and safe for concurrent use.
type Scaler struct {
	mean  []float64
	scale []float64
}

// NewScaler builds a Scaler from fitted parameters. Both slices must have
// FeatureCount entries. Zero scale entries are treated as 1, which is how a
// constant column is handled at fit time.
func NewScaler(mean, scale []float64) (*Scaler, error) {
	if len(mean) != FeatureCount || len(scale) != FeatureCount {
		return nil, fmt.Errorf("%w: scaler has %d means and %d scales, want %d",
			ErrFeatureMismatch, len(mean), len(scale), FeatureCount)
	}
	s := &Scaler{
		mean:  append([]float64(nil), mean...),
		scale: make([]float64, len(scale)),
	}
	for i, v := range scale {
		if v == 0 {
			v = 1
		}
		s.scale[i] = v
	}
	return s, nil
}

// Transform returns a new, normalized vector. The input is not modified.
// NaN and infinite inputs propagate to the output.
func (s *Scaler) Transform(x FeatureVector) (FeatureVector, error) {
	if len(x) != len(s.mean) {
		return nil, fmt.Errorf("%w: vector has %d features, scaler expects %d", ErrFeatureMismatch, len(x), len(s.mean))
	}
	out := make(FeatureVector, len(x))
	floats.SubTo(out, x, s.mean)
	floats.Div(out, s.scale)
	return out, nil
}

// Width reports the number of columns the scaler was fitted on.
func (s *Scaler) Width() int { return len(s.mean) }

package admission

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// KindLinearRegression identifies an ordinary least squares model artifact.
const KindLinearRegression = "linear_regression"

// Predictor maps a scaled feature vector to a single score. Implementations
// must be deterministic and safe for concurrent use.
type Predictor interface {
	Predict(x FeatureVector) (float64, error)
	Width() int
}

// LinearModel is a fitted linear regression: intercept + coef·x.
type LinearModel struct {
	coef      []float64
	intercept float64
}

var _ Predictor = (*LinearModel)(nil)

// NewLinearModel builds a model from fitted coefficients.
func NewLinearModel(coef []float64, intercept float64) (*LinearModel, error) {
	if len(coef) != FeatureCount {
		return nil, fmt.Errorf("%w: model has %d coefficients, want %d", ErrFeatureMismatch, len(coef), FeatureCount)
	}
	return &LinearModel{
		coef:      append([]float64(nil), coef...),
		intercept: intercept,
	}, nil
}

// Predict returns the raw regression output, unclamped.
func (m *LinearModel) Predict(x FeatureVector) (float64, error) {
	if len(x) != len(m.coef) {
		return 0, fmt.Errorf("%w: vector has %d features, model expects %d", ErrFeatureMismatch, len(x), len(m.coef))
	}
	return m.intercept + floats.Dot(m.coef, x), nil
}

// Width reports the number of coefficients.
func (m *LinearModel) Width() int { return len(m.coef) }

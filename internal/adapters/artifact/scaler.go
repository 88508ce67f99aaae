package artifact

import (
	"context"
	"fmt"

	"github.com/okian/gradpredict/internal/domain/admission"
)

type scalerDocument struct {
	FeatureNames []string  `yaml:"feature_names"`
	Mean         []float64 `yaml:"mean"`
	Scale        []float64 `yaml:"scale"`
}

// ScalerLoader loads a fitted standard scaler.
type ScalerLoader struct{}

var _ Loader[*admission.Scaler] = ScalerLoader{}

// Load reads and validates the scaler at path.
func (ScalerLoader) Load(ctx context.Context, path string) (*admission.Scaler, error) {
	var doc scalerDocument
	if err := readDocument(ctx, path, "scaler.schema.json", &doc); err != nil {
		return nil, err
	}
	if err := admission.CheckFeatureNames(doc.FeatureNames); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidArtifact, path, err)
	}
	s, err := admission.NewScaler(doc.Mean, doc.Scale)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidArtifact, path, err)
	}
	return s, nil
}

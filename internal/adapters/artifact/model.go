package artifact

import (
	"context"
	"fmt"

	"github.com/okian/gradpredict/internal/domain/admission"
)

type modelDocument struct {
	Kind         string    `yaml:"kind"`
	FeatureNames []string  `yaml:"feature_names"`
	Coefficients []float64 `yaml:"coefficients"`
	Intercept    float64   `yaml:"intercept"`
}

// ModelLoader loads a fitted regression model.
type ModelLoader struct{}

var _ Loader[admission.Predictor] = ModelLoader{}

// Load reads and validates the model at path.
func (ModelLoader) Load(ctx context.Context, path string) (admission.Predictor, error) {
	var doc modelDocument
	if err := readDocument(ctx, path, "model.schema.json", &doc); err != nil {
		return nil, err
	}
	if err := admission.CheckFeatureNames(doc.FeatureNames); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidArtifact, path, err)
	}

	switch doc.Kind {
	case admission.KindLinearRegression:
		m, err := admission.NewLinearModel(doc.Coefficients, doc.Intercept)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidArtifact, path, err)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("%w: %s: %w: unsupported kind %q", ErrInvalidArtifact, path, admission.ErrInvalidModel, doc.Kind)
	}
}

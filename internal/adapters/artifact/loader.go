// Package artifact loads the pre-fitted scaler and regression model from
// their serialized form on disk.
//
// Artifacts are JSON or YAML documents. Each document is checked against an
// embedded JSON Schema before it is decoded, so a truncated or hand-edited
// file fails at startup with a message naming the offending field.
package artifact

import (
	"context"
	"embed"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed schema/*.schema.json
var schemaFS embed.FS

// Loader reads one artifact of type T from path.
type Loader[T any] interface {
	Load(ctx context.Context, path string) (T, error)
}

// LoaderFunc adapts a plain function to Loader.
type LoaderFunc[T any] func(ctx context.Context, path string) (T, error)

// Load calls f.
func (f LoaderFunc[T]) Load(ctx context.Context, path string) (T, error) {
	return f(ctx, path)
}

// readDocument reads path, validates it against the named schema and decodes
// it into out.
func readDocument(ctx context.Context, path, schemaName string, out any) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrLoadArtifact, path, err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoadArtifact, err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidArtifact, path, err)
	}
	if err := validate(schemaName, doc); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidArtifact, path, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidArtifact, path, err)
	}
	return nil
}

func validate(schemaName string, doc map[string]any) error {
	schema, err := schemaFS.ReadFile("schema/" + schemaName)
	if err != nil {
		return fmt.Errorf("schema %s: %w", schemaName, err)
	}
	// An empty file decodes to a nil map, which validates as null.
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schema),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("schema violations: %s", strings.Join(errs, "; "))
	}
	return nil
}

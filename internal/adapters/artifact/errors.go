package artifact

import "errors"

// Sentinel kinds for artifact errors.
var (
	ErrLoadArtifact    = errors.New("load artifact failed")
	ErrInvalidArtifact = errors.New("invalid artifact")
)

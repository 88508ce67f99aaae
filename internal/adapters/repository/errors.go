package repository

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrLoadCatalog   = errors.New("load catalog failed")
	ErrInvalidRow    = errors.New("invalid catalog row")
	ErrMissingColumn = errors.New("missing catalog column")
)

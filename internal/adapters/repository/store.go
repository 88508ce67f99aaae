// Package repository loads the static college catalog from a CSV file or a
// SQLite database.
package repository

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/okian/gradpredict/internal/domain/catalog"
)

// Store reads the full catalog in its stored order. Stores are read once at
// startup; nothing writes through them.
type Store interface {
	Load(ctx context.Context) ([]catalog.Entry, error)
}

// Open returns the Store matching the extension of path:
// .csv for CSV, .db/.sqlite/.sqlite3 for SQLite.
func Open(path string, opts ...Option) (Store, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return NewCSVStore(path, opts...), nil
	case ".db", ".sqlite", ".sqlite3":
		s, err := NewSQLiteStore(path, opts...)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: unsupported catalog file %q", ErrLoadCatalog, path)
	}
}

// checkEntry applies the row rules shared by every store.
func checkEntry(e catalog.Entry) error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("%w: empty college name", ErrInvalidRow)
	}
	if math.IsNaN(e.CutoffPercentage) || e.CutoffPercentage < 0 || e.CutoffPercentage > 100 {
		return fmt.Errorf("%w: cutoff %v for %q is outside 0-100", ErrInvalidRow, e.CutoffPercentage, e.Name)
	}
	return nil
}

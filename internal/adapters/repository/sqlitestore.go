package repository

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"regexp"

	"github.com/okian/gradpredict/internal/domain/catalog"

	_ "modernc.org/sqlite"
)

var tableNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLiteStore reads the catalog from a table with name and
// cutoff_percentage columns, in rowid order.
type SQLiteStore struct {
	path string
	cfg  settings
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a store for the database file at path.
func NewSQLiteStore(path string, opts ...Option) (*SQLiteStore, error) {
	cfg := newSettings(opts)
	if !tableNameRegex.MatchString(cfg.table) {
		return nil, fmt.Errorf("%w: invalid table name %q", ErrLoadCatalog, cfg.table)
	}
	return &SQLiteStore{path: path, cfg: cfg}, nil
}

// Load reads every row of the table.
func (s *SQLiteStore) Load(ctx context.Context) ([]catalog.Entry, error) {
	// sql.Open would create an empty database for a missing file.
	if _, err := os.Stat(s.path); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadCatalog, err)
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrLoadCatalog, s.path, err)
	}
	defer func() { _ = db.Close() }()

	query := fmt.Sprintf(`SELECT name, cutoff_percentage FROM %q ORDER BY rowid`, s.cfg.table)
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: query %s: %w", ErrLoadCatalog, s.path, err)
	}
	defer func() { _ = rows.Close() }()

	entries := make([]catalog.Entry, 0)
	for rows.Next() {
		var e catalog.Entry
		if err := rows.Scan(&e.Name, &e.CutoffPercentage); err != nil {
			return nil, fmt.Errorf("%w: scan %s: %w", ErrLoadCatalog, s.path, err)
		}
		if err := checkEntry(e); err != nil {
			return nil, fmt.Errorf("%w: %s row %d: %w", ErrLoadCatalog, s.path, len(entries)+1, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadCatalog, s.path, err)
	}
	return entries, nil
}

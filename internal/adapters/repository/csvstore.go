package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/okian/gradpredict/internal/domain/catalog"
)

// CSVStore reads the catalog from a CSV file with a header row. Columns are
// located by name, so their order and any extra columns do not matter.
type CSVStore struct {
	path string
	cfg  settings
}

var _ Store = (*CSVStore)(nil)

// NewCSVStore creates a store for the CSV file at path.
func NewCSVStore(path string, opts ...Option) *CSVStore {
	return &CSVStore{path: path, cfg: newSettings(opts)}
}

// Load reads every row of the file.
func (s *CSVStore) Load(ctx context.Context) ([]catalog.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadCatalog, err)
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadCatalog, err)
	}
	defer func() { _ = f.Close() }()

	entries, err := s.read(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadCatalog, s.path, err)
	}
	return entries, nil
}

func (s *CSVStore) read(r io.Reader) ([]catalog.Entry, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: file has no header row", ErrMissingColumn)
	}
	if err != nil {
		return nil, err
	}
	nameIdx, cutoffIdx := -1, -1
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		switch h {
		case s.cfg.nameColumn:
			nameIdx = i
		case s.cfg.cutoffColumn:
			cutoffIdx = i
		}
	}
	if nameIdx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, s.cfg.nameColumn)
	}
	if cutoffIdx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, s.cfg.cutoffColumn)
	}

	entries := make([]catalog.Entry, 0)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)

		raw := strings.TrimSpace(rec[cutoffIdx])
		cutoff, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: cutoff %q is not a number", line, ErrInvalidRow, raw)
		}
		e := catalog.Entry{Name: strings.TrimSpace(rec[nameIdx]), CutoffPercentage: cutoff}
		if err := checkEntry(e); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

package repository

// Default column and table names, matching the published catalog file.
const (
	DefaultNameColumn   = "College Name"
	DefaultCutoffColumn = "Cutoff Percentage"
	DefaultTable        = "colleges"
)

type settings struct {
	nameColumn   string
	cutoffColumn string
	table        string
}

func newSettings(opts []Option) settings {
	s := settings{
		nameColumn:   DefaultNameColumn,
		cutoffColumn: DefaultCutoffColumn,
		table:        DefaultTable,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Option applies a configuration option to a Store.
type Option func(*settings)

// WithNameColumn sets the CSV header holding the college name.
func WithNameColumn(name string) Option {
	return func(s *settings) {
		if name != "" {
			s.nameColumn = name
		}
	}
}

// WithCutoffColumn sets the CSV header holding the cutoff percentage.
func WithCutoffColumn(name string) Option {
	return func(s *settings) {
		if name != "" {
			s.cutoffColumn = name
		}
	}
}

// WithTable sets the SQLite table to read.
func WithTable(table string) Option {
	return func(s *settings) {
		if table != "" {
			s.table = table
		}
	}
}

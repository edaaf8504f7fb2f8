// Package store reads the system log table from SQLite into the in-memory
// tabular model. The store is strictly read-only: metrics are produced by
// an external collector, this side only consumes them.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/sysdash/sysdash/internal/metrics"
)

// Config holds store configuration.
type Config struct {
	DBPath string // path to the sqlite database file
	Table  string // log table name, validated as an identifier
}

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidTableName reports whether name is safe to interpolate as a quoted
// SQL identifier. The table name comes from configuration, not from
// requests, but it still cannot be bound as a query parameter.
func ValidTableName(name string) bool {
	return identPattern.MatchString(name)
}

// Store loads the metrics table. Every failure mode degrades to an empty
// table: a dashboard with no data is a valid state, a crashed dashboard
// is not.
type Store struct {
	config Config

	mu sync.Mutex
	db *sql.DB
}

// New creates a store for the given configuration. The database file is
// not touched until the first Load; a missing file is not an error.
func New(config Config) *Store {
	return &Store{config: config}
}

// open returns the shared read-only connection, creating it on first use.
func (s *Store) open() (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return s.db, nil
	}

	// Pragmas in the DSN so every pool connection is configured; the pool
	// is capped at one connection, which is how SQLite is happiest.
	dsn := s.config.DBPath + "?" + url.Values{
		"mode": []string{"ro"},
		"_pragma": []string{
			"busy_timeout(30000)",
			"query_only(1)",
		},
	}.Encode()
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open log database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	s.db = db
	return db, nil
}

// Load reads the full log table. It never returns an error: a missing
// file, unreachable database, absent table, or failed query all yield an
// empty table with no columns, logged but not raised.
func (s *Store) Load(ctx context.Context) *metrics.Table {
	if _, err := os.Stat(s.config.DBPath); err != nil {
		log.Debug().Str("path", s.config.DBPath).Msg("Log database not found; serving empty table")
		return metrics.NewTable(nil)
	}

	db, err := s.open()
	if err != nil {
		log.Warn().Err(err).Str("path", s.config.DBPath).Msg("Failed to open log database; serving empty table")
		return metrics.NewTable(nil)
	}

	query := fmt.Sprintf(`SELECT * FROM "%s"`, s.config.Table)
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		log.Warn().Err(err).Str("table", s.config.Table).Msg("Log table query failed; serving empty table")
		return metrics.NewTable(nil)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		log.Warn().Err(err).Msg("Failed to read log table columns; serving empty table")
		return metrics.NewTable(nil)
	}

	table := metrics.NewTable(columns)
	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			log.Warn().Err(err).Msg("Failed to scan log row; skipping")
			continue
		}
		cells := make([]metrics.Cell, len(columns))
		for i, v := range values {
			cells[i] = toCell(v)
		}
		table.Append(cells)
	}
	if err := rows.Err(); err != nil {
		log.Warn().Err(err).Msg("Log table iteration ended early")
	}

	log.Debug().Int("rows", table.Len()).Int("columns", len(columns)).Msg("Loaded log table")
	return table
}

// toCell converts a driver value into a table cell, preserving the source
// text for export round-trips.
func toCell(v any) metrics.Cell {
	switch val := v.(type) {
	case nil:
		return metrics.NullCell()
	case float64:
		return metrics.NumberCell(val)
	case int64:
		return metrics.NumberCell(float64(val))
	case []byte:
		return metrics.TextCell(string(val))
	case string:
		return metrics.TextCell(val)
	case time.Time:
		return metrics.TextCell(val.Format("2006-01-02 15:04:05"))
	case bool:
		if val {
			return metrics.NumberCell(1)
		}
		return metrics.NumberCell(0)
	default:
		return metrics.TextCell(fmt.Sprintf("%v", val))
	}
}

// Close releases the database connection if one was opened.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

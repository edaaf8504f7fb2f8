package agent

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/sysdash/sysdash/internal/store"
)

// Writer appends samples to the sqlite log table, creating it on first
// use.
type Writer struct {
	db    *sql.DB
	table string
}

// NewWriter opens the log database for appending.
func NewWriter(dbPath, table string) (*Writer, error) {
	if !store.ValidTableName(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	dsn := dbPath + "?" + url.Values{
		"_pragma": []string{
			"busy_timeout(30000)",
			"journal_mode(WAL)",
			"synchronous(NORMAL)",
		},
	}.Encode()
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open log database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	w := &Writer{db: db, table: table}
	if err := w.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return w, nil
}

func (w *Writer) initSchema() error {
	schema := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS "%s" (
			timestamp TEXT,
			cpu REAL,
			memory REAL,
			disk REAL
		);
	`, w.table)
	if _, err := w.db.Exec(schema); err != nil {
		return fmt.Errorf("create log table: %w", err)
	}
	return nil
}

// Append writes one sample. Timestamps are stored in the layout the
// dashboard's parser tries first.
func (w *Writer) Append(ctx context.Context, s Sample) error {
	query := fmt.Sprintf(`INSERT INTO "%s" (timestamp, cpu, memory, disk) VALUES (?, ?, ?, ?)`, w.table)
	_, err := w.db.ExecContext(ctx, query,
		s.Timestamp.Format("2006-01-02 15:04:05"), s.CPU, s.Memory, s.Disk)
	if err != nil {
		return fmt.Errorf("insert sample: %w", err)
	}
	log.Debug().
		Float64("cpu", s.CPU).
		Float64("memory", s.Memory).
		Float64("disk", s.Disk).
		Msg("Sample recorded")
	return nil
}

// Close releases the database connection.
func (w *Writer) Close() error {
	return w.db.Close()
}

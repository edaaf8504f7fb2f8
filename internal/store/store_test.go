package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/sysdash/sysdash/internal/metrics"
)

func seedDB(t *testing.T, path string) {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	stmts := []string{
		`CREATE TABLE system_log (timestamp TEXT, cpu REAL, memory REAL, disk REAL)`,
		`INSERT INTO system_log VALUES ('2024-03-01 10:00:00', 42.5, 60.0, 70.0)`,
		`INSERT INTO system_log VALUES ('not-a-timestamp', 90.0, NULL, 75.0)`,
		`INSERT INTO system_log VALUES (NULL, 10.0, 20.0, 30.0)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatal(err)
		}
	}
}

func TestLoadMissingDatabase(t *testing.T) {
	s := New(Config{DBPath: filepath.Join(t.TempDir(), "nope.db"), Table: "system_log"})
	table := s.Load(context.Background())

	if table.Len() != 0 {
		t.Errorf("rows = %d, want 0", table.Len())
	}
	if len(table.Columns) != 0 {
		t.Errorf("columns = %v, want none", table.Columns)
	}
}

func TestLoadMissingTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`CREATE TABLE other (x INTEGER)`); err != nil {
		t.Fatal(err)
	}
	db.Close()

	s := New(Config{DBPath: path, Table: "system_log"})
	defer s.Close()

	table := s.Load(context.Background())
	if table.Len() != 0 {
		t.Errorf("rows = %d, want 0 for a missing table", table.Len())
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.db")
	seedDB(t, path)

	s := New(Config{DBPath: path, Table: "system_log"})
	defer s.Close()

	table := s.Load(context.Background())
	if table.Len() != 3 {
		t.Fatalf("rows = %d, want 3", table.Len())
	}

	wantCols := []string{"timestamp", "cpu", "memory", "disk"}
	if len(table.Columns) != len(wantCols) {
		t.Fatalf("columns = %v", table.Columns)
	}
	for i, c := range wantCols {
		if table.Columns[i] != c {
			t.Errorf("column %d = %q, want %q", i, table.Columns[i], c)
		}
	}

	// First row fully parsed
	if !table.Rows[0].HasTimestamp {
		t.Error("valid timestamp not parsed")
	}
	if v, ok := table.MetricValue(table.Rows[0], metrics.ColumnCPU); !ok || v != 42.5 {
		t.Errorf("cpu = %v,%v", v, ok)
	}

	// Bad timestamp: row kept, marker missing
	if table.Rows[1].HasTimestamp {
		t.Error("unparseable timestamp should be a missing marker")
	}
	if _, ok := table.MetricValue(table.Rows[1], metrics.ColumnMemory); ok {
		t.Error("NULL memory should be a missing value")
	}

	// NULL timestamp: row kept
	if table.Rows[2].HasTimestamp {
		t.Error("NULL timestamp should be a missing marker")
	}
}

func TestValidTableName(t *testing.T) {
	for _, ok := range []string{"system_log", "Log2", "_t"} {
		if !ValidTableName(ok) {
			t.Errorf("%q should be valid", ok)
		}
	}
	for _, bad := range []string{"", "2log", `sys"log`, "a b", "t;drop"} {
		if ValidTableName(bad) {
			t.Errorf("%q should be rejected", bad)
		}
	}
}

// countingLoader fakes the store for cache tests.
type countingLoader struct {
	loads int
}

func (c *countingLoader) Load(ctx context.Context) *metrics.Table {
	c.loads++
	return metrics.NewTable([]string{"cpu"})
}

func TestCachePerSession(t *testing.T) {
	loader := &countingLoader{}
	cache := NewCache(loader)
	ctx := context.Background()

	a1 := cache.Get(ctx, "session-a")
	a2 := cache.Get(ctx, "session-a")
	if a1 != a2 {
		t.Error("repeated Get for one session should hit the cache")
	}
	if loader.loads != 1 {
		t.Errorf("loads = %d, want 1", loader.loads)
	}

	cache.Get(ctx, "session-b")
	if loader.loads != 2 {
		t.Errorf("loads = %d, want 2 (sessions do not share entries)", loader.loads)
	}

	// Refresh in one session leaves the other untouched
	cache.Invalidate("session-a")
	cache.Get(ctx, "session-b")
	if loader.loads != 2 {
		t.Error("invalidating session-a must not evict session-b")
	}
	cache.Get(ctx, "session-a")
	if loader.loads != 3 {
		t.Error("invalidated session should reload")
	}
}

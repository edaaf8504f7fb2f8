// Package metrics defines the in-memory tabular model for system log data.
// Column presence is optional by design: a source table may lack any of the
// metric columns, and individual cells may be NULL or non-numeric. Both
// conditions are modeled explicitly instead of being collapsed to zero.
package metrics

import (
	"strconv"
	"strings"
	"time"
)

// Well-known column names in the system log table.
const (
	ColumnTimestamp = "timestamp"
	ColumnCPU       = "cpu"
	ColumnMemory    = "memory"
	ColumnDisk      = "disk"
)

// MetricColumns lists the percentage metrics consumers aggregate over,
// in display order.
var MetricColumns = []string{ColumnCPU, ColumnMemory, ColumnDisk}

// Cell is a single table value. Raw preserves the source text exactly as
// stored so exports can reproduce it; Num/IsNum carry the parsed numeric
// form when one exists. A NULL source value has Null set and an empty Raw.
type Cell struct {
	Raw   string
	Num   float64
	IsNum bool
	Null  bool
}

// TextCell builds a cell from source text, parsing the numeric form if
// the text is a valid float.
func TextCell(raw string) Cell {
	c := Cell{Raw: raw}
	if n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
		c.Num = n
		c.IsNum = true
	}
	return c
}

// NumberCell builds a cell from a numeric source value.
func NumberCell(n float64) Cell {
	return Cell{Raw: strconv.FormatFloat(n, 'g', -1, 64), Num: n, IsNum: true}
}

// NullCell builds a cell for a NULL source value.
func NullCell() Cell {
	return Cell{Null: true}
}

// Row is one record. Cells are aligned with the owning table's column
// order. Timestamp is parsed from the "timestamp" column when present;
// HasTimestamp is false when the column is absent, NULL, or unparseable.
type Row struct {
	Cells        []Cell
	Timestamp    time.Time
	HasTimestamp bool
}

// Table is an ordered sequence of rows sharing one column set. Row order
// is source order; the log is append-only so this is effectively
// chronological, but nothing here assumes sortedness.
type Table struct {
	Columns []string
	Rows    []Row

	index map[string]int
}

// NewTable creates an empty table with the given column set.
func NewTable(columns []string) *Table {
	t := &Table{
		Columns: append([]string(nil), columns...),
		index:   make(map[string]int, len(columns)),
	}
	for i, name := range t.Columns {
		t.index[name] = i
	}
	return t
}

// Append adds a row, deriving its parsed timestamp from the timestamp
// column if the table has one. Unparseable timestamps become a missing
// marker; the row itself is always kept.
func (t *Table) Append(cells []Cell) {
	row := Row{Cells: cells}
	if i, ok := t.index[ColumnTimestamp]; ok && i < len(cells) {
		c := cells[i]
		if !c.Null {
			if ts, ok := ParseTimestamp(c.Raw); ok {
				row.Timestamp = ts
				row.HasTimestamp = true
			}
		}
	}
	t.Rows = append(t.Rows, row)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// HasColumn reports whether the table has a column with the given name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Cell returns the row's cell for the named column.
func (t *Table) Cell(row Row, name string) (Cell, bool) {
	i, ok := t.index[name]
	if !ok || i >= len(row.Cells) {
		return Cell{}, false
	}
	return row.Cells[i], true
}

// MetricValue returns the numeric value of the named column in the row.
// Absent columns, NULL cells, and non-numeric text all report ok=false.
func (t *Table) MetricValue(row Row, name string) (float64, bool) {
	c, ok := t.Cell(row, name)
	if !ok || c.Null || !c.IsNum {
		return 0, false
	}
	return c.Num, true
}

// Latest returns the last row in source order.
func (t *Table) Latest() (Row, bool) {
	if len(t.Rows) == 0 {
		return Row{}, false
	}
	return t.Rows[len(t.Rows)-1], true
}

// HasValidTimestamps reports whether at least one row carries a parsed
// timestamp. When false, time filtering is unavailable for this table.
func (t *Table) HasValidTimestamps() bool {
	for _, r := range t.Rows {
		if r.HasTimestamp {
			return true
		}
	}
	return false
}

// TimeBounds returns the earliest and latest valid timestamps in the
// table. ok is false when no row has a valid timestamp.
func (t *Table) TimeBounds() (min, max time.Time, ok bool) {
	for _, r := range t.Rows {
		if !r.HasTimestamp {
			continue
		}
		if !ok || r.Timestamp.Before(min) {
			min = r.Timestamp
		}
		if !ok || r.Timestamp.After(max) {
			max = r.Timestamp
		}
		ok = true
	}
	return min, max, ok
}

// Subset returns a new table with the same columns holding the rows for
// which keep returns true, preserving source order. The receiver is not
// modified.
func (t *Table) Subset(keep func(Row) bool) *Table {
	out := NewTable(t.Columns)
	for _, r := range t.Rows {
		if keep(r) {
			out.Rows = append(out.Rows, r)
		}
	}
	return out
}

// timestampLayouts are tried in order when parsing source timestamps.
// The log writer uses "2006-01-02 15:04:05"; the rest cover ISO-8601
// variants seen in imported data.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses a source timestamp string. ok is false when no
// known layout matches; callers treat that as a missing value, not an
// error.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

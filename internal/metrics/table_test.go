package metrics

import (
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	cases := []struct {
		in    string
		valid bool
	}{
		{"2024-03-01 10:30:00", true},
		{"2024-03-01T10:30:00Z", true},
		{"2024-03-01T10:30:00", true},
		{"2024-03-01", true},
		{"not a timestamp", false},
		{"", false},
		{"  ", false},
	}
	for _, tc := range cases {
		if _, ok := ParseTimestamp(tc.in); ok != tc.valid {
			t.Errorf("ParseTimestamp(%q) valid=%v, want %v", tc.in, ok, tc.valid)
		}
	}
}

func TestAppendParsesTimestamps(t *testing.T) {
	table := NewTable([]string{"timestamp", "cpu"})
	table.Append([]Cell{TextCell("2024-03-01 10:00:00"), NumberCell(50)})
	table.Append([]Cell{TextCell("garbage"), NumberCell(60)})
	table.Append([]Cell{NullCell(), NumberCell(70)})

	if !table.Rows[0].HasTimestamp {
		t.Error("valid timestamp not parsed")
	}
	want := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	if !table.Rows[0].Timestamp.Equal(want) {
		t.Errorf("timestamp = %v, want %v", table.Rows[0].Timestamp, want)
	}

	// Bad and NULL timestamps become missing markers, rows are kept
	if table.Rows[1].HasTimestamp || table.Rows[2].HasTimestamp {
		t.Error("invalid timestamps should be missing markers")
	}
	if table.Len() != 3 {
		t.Errorf("rows = %d, want 3 (no row dropped for a bad cell)", table.Len())
	}
}

func TestMetricValue(t *testing.T) {
	table := NewTable([]string{"cpu", "note"})
	table.Append([]Cell{NumberCell(42.5), TextCell("ok")})
	table.Append([]Cell{NullCell(), TextCell("null cpu")})
	table.Append([]Cell{TextCell("n/a"), TextCell("text cpu")})

	if v, ok := table.MetricValue(table.Rows[0], "cpu"); !ok || v != 42.5 {
		t.Errorf("MetricValue = %v,%v, want 42.5,true", v, ok)
	}
	if _, ok := table.MetricValue(table.Rows[1], "cpu"); ok {
		t.Error("NULL cell should not report a value")
	}
	if _, ok := table.MetricValue(table.Rows[2], "cpu"); ok {
		t.Error("non-numeric cell should not report a value")
	}
	if _, ok := table.MetricValue(table.Rows[0], "memory"); ok {
		t.Error("absent column should not report a value")
	}
}

func TestTimeBounds(t *testing.T) {
	table := NewTable([]string{"timestamp"})
	if _, _, ok := table.TimeBounds(); ok {
		t.Error("empty table should have no bounds")
	}

	table.Append([]Cell{TextCell("2024-03-02 00:00:00")})
	table.Append([]Cell{TextCell("bad")})
	table.Append([]Cell{TextCell("2024-03-01 00:00:00")})
	table.Append([]Cell{TextCell("2024-03-05 00:00:00")})

	min, max, ok := table.TimeBounds()
	if !ok {
		t.Fatal("expected bounds")
	}
	if min.Day() != 1 || max.Day() != 5 {
		t.Errorf("bounds = %v..%v, want Mar 1..Mar 5", min, max)
	}
}

func TestSubsetPreservesOrderAndInput(t *testing.T) {
	table := NewTable([]string{"cpu"})
	for _, v := range []float64{10, 20, 30, 40} {
		table.Append([]Cell{NumberCell(v)})
	}

	sub := table.Subset(func(r Row) bool {
		v, _ := table.MetricValue(r, "cpu")
		return v >= 20
	})

	if sub.Len() != 3 {
		t.Fatalf("subset len = %d, want 3", sub.Len())
	}
	for i, want := range []float64{20, 30, 40} {
		if v, _ := sub.MetricValue(sub.Rows[i], "cpu"); v != want {
			t.Errorf("subset row %d = %v, want %v", i, v, want)
		}
	}
	if table.Len() != 4 {
		t.Error("Subset must not modify the input table")
	}
}

package reporting

import (
	"testing"

	"github.com/sysdash/sysdash/internal/metrics"
)

func cpuTable(values ...float64) *metrics.Table {
	table := metrics.NewTable([]string{"cpu"})
	for _, v := range values {
		table.Append([]metrics.Cell{metrics.NumberCell(v)})
	}
	return table
}

func TestSummarizeBasic(t *testing.T) {
	table := cpuTable(90, 50, 85)
	stats := Summarize(table)

	cpu := stats["cpu"]
	if cpu.Avg != 75.0 {
		t.Errorf("avg = %v, want 75.0", cpu.Avg)
	}
	if cpu.Max != 90.0 {
		t.Errorf("max = %v, want 90.0", cpu.Max)
	}
	if cpu.Min != 50.0 {
		t.Errorf("min = %v, want 50.0", cpu.Min)
	}
	if cpu.Count != 3 {
		t.Errorf("count = %v, want 3", cpu.Count)
	}
}

func TestSummarizeSentinels(t *testing.T) {
	// Empty table
	empty := metrics.NewTable([]string{"cpu", "memory", "disk"})
	for name, s := range Summarize(empty) {
		if s.Avg != 0 || s.Max != 0 || s.Min != 0 || s.Count != 0 {
			t.Errorf("%s: empty table stat = %+v, want zero sentinel", name, s)
		}
	}

	// Absent columns
	table := cpuTable(42)
	stats := Summarize(table)
	if s := stats["memory"]; s.Avg != 0 || s.Max != 0 || s.Min != 0 {
		t.Errorf("absent column stat = %+v, want zero sentinel", s)
	}
	if stats["cpu"].Count != 1 {
		t.Error("present column should still aggregate")
	}
}

func TestSummarizeSkipsMissingCells(t *testing.T) {
	table := metrics.NewTable([]string{"cpu"})
	table.Append([]metrics.Cell{metrics.NumberCell(100)})
	table.Append([]metrics.Cell{metrics.NullCell()})
	table.Append([]metrics.Cell{metrics.TextCell("broken")})
	table.Append([]metrics.Cell{metrics.NumberCell(50)})

	cpu := Summarize(table)["cpu"]
	// Missing cells stay out of the mean denominator
	if cpu.Avg != 75.0 {
		t.Errorf("avg = %v, want 75.0 over the 2 present values", cpu.Avg)
	}
	if cpu.Count != 2 {
		t.Errorf("count = %v, want 2", cpu.Count)
	}
}

func TestAlertCounts(t *testing.T) {
	table := cpuTable(90, 50, 85)
	thresholds := Thresholds{CPU: 80, Memory: 85, Disk: 90}

	counts := AlertCounts(table, thresholds)
	if counts["cpu"] != 2 {
		t.Errorf("cpu alerts = %d, want 2", counts["cpu"])
	}
	// Absent columns count zero
	if counts["memory"] != 0 || counts["disk"] != 0 {
		t.Errorf("absent column alerts = %v, want 0", counts)
	}
}

func TestAlertCountsStrictlyGreater(t *testing.T) {
	table := cpuTable(80, 80.01)
	counts := AlertCounts(table, Thresholds{CPU: 80})
	if counts["cpu"] != 1 {
		t.Errorf("cpu alerts = %d, want 1 (80 is not > 80)", counts["cpu"])
	}
}

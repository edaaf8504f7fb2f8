package reporting

import (
	"strings"
	"testing"

	"github.com/sysdash/sysdash/internal/metrics"
)

func TestBuildReport(t *testing.T) {
	table := metrics.NewTable([]string{"timestamp", "cpu"})
	table.Append([]metrics.Cell{metrics.TextCell("2024-03-01 10:00:00"), metrics.NumberCell(90)})
	table.Append([]metrics.Cell{metrics.TextCell("2024-03-02 10:00:00"), metrics.NumberCell(50)})

	report := BuildReport(table, "Last 7 days", DefaultThresholds())

	if report.Rows != 2 {
		t.Errorf("rows = %d, want 2", report.Rows)
	}
	if report.Label != "Last 7 days" {
		t.Errorf("label = %q", report.Label)
	}
	if report.TimeRange != "2024-03-01 10:00:00 to 2024-03-02 10:00:00" {
		t.Errorf("time range = %q", report.TimeRange)
	}
	if report.Stats["cpu"].Avg != 70 {
		t.Errorf("cpu avg = %v, want 70", report.Stats["cpu"].Avg)
	}
	if report.Alerts["cpu"] != 1 {
		t.Errorf("cpu alerts = %d, want 1", report.Alerts["cpu"])
	}
}

func TestBuildReportNoTimestamps(t *testing.T) {
	table := metrics.NewTable([]string{"cpu"})
	table.Append([]metrics.Cell{metrics.NumberCell(10)})

	report := BuildReport(table, "All", DefaultThresholds())
	if report.TimeRange != "N/A" {
		t.Errorf("time range = %q, want N/A", report.TimeRange)
	}
}

func TestReportLines(t *testing.T) {
	table := metrics.NewTable([]string{"cpu", "memory", "disk"})
	table.Append([]metrics.Cell{
		metrics.NumberCell(90), metrics.NumberCell(40), metrics.NumberCell(70),
	})
	report := BuildReport(table, "All", DefaultThresholds())

	lines := report.Lines("2024-03-10 12:00:00")

	want := []string{
		"System Log Analysis Report",
		"----------------------------------------",
		"Generated at: 2024-03-10 12:00:00",
		"Filter: All",
		"Rows: 1",
		"Time range: N/A",
		"",
		"Key Statistics:",
		"CPU    avg=90.00%  max=90.00%  min=90.00%",
		"Memory avg=40.00%  max=40.00%  min=40.00%",
		"Disk   avg=70.00%  max=70.00%  min=70.00%",
		"",
		"Thresholds:",
		"CPU=80%  Memory=85%  Disk=90%",
		"Alert Counts:",
		"CPU > 80%: 1",
		"Memory > 85%: 0",
		"Disk > 90%: 0",
	}
	if len(lines) != len(want) {
		t.Fatalf("line count = %d, want %d", len(lines), len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestReportLinesFeedThePDF(t *testing.T) {
	table := metrics.NewTable([]string{"cpu"})
	table.Append([]metrics.Cell{metrics.NumberCell(50)})
	report := BuildReport(table, "Custom: 2024-03-01 to 2024-03-05", DefaultThresholds())

	pdf := string(WritePDF(report.Lines("2024-03-10 12:00:00")))
	if !strings.Contains(pdf, "(Filter: Custom: 2024-03-01 to 2024-03-05) Tj") {
		t.Error("filter label not embedded in PDF content")
	}
}

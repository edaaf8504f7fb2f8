package reporting

import (
	"fmt"

	"github.com/sysdash/sysdash/internal/metrics"
)

// Export filenames and content types for the two report formats.
const (
	CSVFilename = "system_log_report.csv"
	PDFFilename = "system_log_report.pdf"

	CSVContentType = "text/csv"
	PDFContentType = "application/pdf"
)

const timestampLayout = "2006-01-02 15:04:05"

// Report is the request-scoped summary of a filtered log subset. It is
// never persisted; it exists only to build one export.
type Report struct {
	Label      string          `json:"label"`
	Rows       int             `json:"rows"`
	TimeRange  string          `json:"timeRange"`
	Stats      map[string]Stat `json:"stats"`
	Alerts     map[string]int  `json:"alerts"`
	Thresholds Thresholds      `json:"thresholds"`
}

// BuildReport assembles the report bundle for a filtered table. TimeRange
// is "N/A" when the subset has no valid timestamps.
func BuildReport(table *metrics.Table, label string, thresholds Thresholds) Report {
	timeRange := "N/A"
	if min, max, ok := table.TimeBounds(); ok {
		timeRange = fmt.Sprintf("%s to %s", min.Format(timestampLayout), max.Format(timestampLayout))
	}
	return Report{
		Label:      label,
		Rows:       table.Len(),
		TimeRange:  timeRange,
		Stats:      Summarize(table),
		Alerts:     AlertCounts(table, thresholds),
		Thresholds: thresholds,
	}
}

// Lines renders the report as the fixed PDF content lines. The generation
// timestamp is supplied by the caller so the serializer itself stays
// deterministic.
func (r Report) Lines(generatedAt string) []string {
	cpu, mem, disk := r.Stats[metrics.ColumnCPU], r.Stats[metrics.ColumnMemory], r.Stats[metrics.ColumnDisk]
	t := r.Thresholds
	return []string{
		"System Log Analysis Report",
		"----------------------------------------",
		fmt.Sprintf("Generated at: %s", generatedAt),
		fmt.Sprintf("Filter: %s", r.Label),
		fmt.Sprintf("Rows: %d", r.Rows),
		fmt.Sprintf("Time range: %s", r.TimeRange),
		"",
		"Key Statistics:",
		fmt.Sprintf("CPU    avg=%.2f%%  max=%.2f%%  min=%.2f%%", cpu.Avg, cpu.Max, cpu.Min),
		fmt.Sprintf("Memory avg=%.2f%%  max=%.2f%%  min=%.2f%%", mem.Avg, mem.Max, mem.Min),
		fmt.Sprintf("Disk   avg=%.2f%%  max=%.2f%%  min=%.2f%%", disk.Avg, disk.Max, disk.Min),
		"",
		"Thresholds:",
		fmt.Sprintf("CPU=%d%%  Memory=%d%%  Disk=%d%%", t.CPU, t.Memory, t.Disk),
		"Alert Counts:",
		fmt.Sprintf("CPU > %d%%: %d", t.CPU, r.Alerts[metrics.ColumnCPU]),
		fmt.Sprintf("Memory > %d%%: %d", t.Memory, r.Alerts[metrics.ColumnMemory]),
		fmt.Sprintf("Disk > %d%%: %d", t.Disk, r.Alerts[metrics.ColumnDisk]),
	}
}

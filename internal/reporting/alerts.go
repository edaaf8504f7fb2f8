package reporting

import (
	"fmt"

	"github.com/sysdash/sysdash/internal/metrics"
)

// Thresholds holds the per-metric alert limits as percentages in [0,100].
// They are session state: initialized to defaults at login, changed only
// through an explicit save.
type Thresholds struct {
	CPU    int `json:"cpu"`
	Memory int `json:"memory"`
	Disk   int `json:"disk"`
}

// DefaultThresholds returns the configuration defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{CPU: 80, Memory: 85, Disk: 90}
}

// For returns the threshold for the named metric column.
func (t Thresholds) For(name string) int {
	switch name {
	case metrics.ColumnCPU:
		return t.CPU
	case metrics.ColumnMemory:
		return t.Memory
	case metrics.ColumnDisk:
		return t.Disk
	default:
		return 0
	}
}

// Validate rejects values outside the percentage range.
func (t Thresholds) Validate() error {
	for _, name := range metrics.MetricColumns {
		v := t.For(name)
		if v < 0 || v > 100 {
			return fmt.Errorf("%s threshold %d out of range [0,100]", name, v)
		}
	}
	return nil
}

// AlertFlags reports, per metric column present in the row, whether its
// value strictly exceeds the threshold. Missing, NULL, and non-numeric
// values never alert. Columns outside cpu/memory/disk are never flagged.
// The function is pure; it drives row highlighting but has no UI
// dependency.
func AlertFlags(table *metrics.Table, row metrics.Row, thresholds Thresholds) map[string]bool {
	flags := make(map[string]bool, len(metrics.MetricColumns))
	for _, name := range metrics.MetricColumns {
		v, ok := table.MetricValue(row, name)
		flags[name] = ok && v > float64(thresholds.For(name))
	}
	return flags
}

package reporting

import "github.com/sysdash/sysdash/internal/metrics"

// Stat holds aggregate values for one metric column. When the column is
// absent or the subset is empty the three aggregates are the 0.0 sentinel
// and Count is 0; the sentinel alone cannot distinguish "no data" from
// genuinely all-zero readings, which is why Count is carried alongside.
type Stat struct {
	Avg   float64 `json:"avg"`
	Max   float64 `json:"max"`
	Min   float64 `json:"min"`
	Count int     `json:"count"`
}

// Summarize computes per-metric statistics over the table. Cells that are
// NULL or non-numeric inside a present column are excluded entirely; they
// do not count toward the mean denominator.
func Summarize(table *metrics.Table) map[string]Stat {
	out := make(map[string]Stat, len(metrics.MetricColumns))
	for _, name := range metrics.MetricColumns {
		out[name] = summarizeColumn(table, name)
	}
	return out
}

func summarizeColumn(table *metrics.Table, name string) Stat {
	if !table.HasColumn(name) || table.Len() == 0 {
		return Stat{}
	}

	var s Stat
	var sum float64
	for _, row := range table.Rows {
		v, ok := table.MetricValue(row, name)
		if !ok {
			continue
		}
		if s.Count == 0 || v > s.Max {
			s.Max = v
		}
		if s.Count == 0 || v < s.Min {
			s.Min = v
		}
		sum += v
		s.Count++
	}
	if s.Count == 0 {
		return Stat{}
	}
	s.Avg = sum / float64(s.Count)
	return s
}

// AlertCounts counts, per metric, the rows whose value strictly exceeds
// the configured threshold. Absent columns count zero.
func AlertCounts(table *metrics.Table, thresholds Thresholds) map[string]int {
	out := make(map[string]int, len(metrics.MetricColumns))
	for _, name := range metrics.MetricColumns {
		count := 0
		if table.HasColumn(name) {
			limit := float64(thresholds.For(name))
			for _, row := range table.Rows {
				if v, ok := table.MetricValue(row, name); ok && v > limit {
					count++
				}
			}
		}
		out[name] = count
	}
	return out
}

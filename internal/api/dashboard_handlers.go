package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/sysdash/sysdash/internal/metrics"
	"github.com/sysdash/sysdash/internal/reporting"
)

// filterFromQuery resolves the window selection in the query string
// against the given table. Custom date ranges are clamped to the
// timestamps actually present, matching the selection surface.
func filterFromQuery(req *http.Request, table *metrics.Table) (reporting.FilterResult, error) {
	q := req.URL.Query()
	window, err := reporting.ParseWindow(q.Get("window"), q.Get("start"), q.Get("end"))
	if err != nil {
		return reporting.FilterResult{}, err
	}
	if min, max, ok := table.TimeBounds(); ok {
		window = window.ClampTo(min, max)
	}
	return reporting.Filter(table, window, time.Now()), nil
}

type kpiEntry struct {
	Value     *float64 `json:"value"`
	Threshold int      `json:"threshold"`
	Alert     bool     `json:"alert"`
}

// handleState serves the dashboard landing data: the latest reading per
// metric against the session thresholds.
func (r *Router) handleState(w http.ResponseWriter, req *http.Request) {
	session := sessionFrom(req)
	table := r.cache.Get(req.Context(), session.ID)

	if table.Len() == 0 {
		writeJSON(w, http.StatusOK, map[string]any{"hasData": false, "rows": 0})
		return
	}

	thresholds := session.Thresholds()
	latest, _ := table.Latest()
	flags := reporting.AlertFlags(table, latest, thresholds)

	kpis := make(map[string]kpiEntry, len(metrics.MetricColumns))
	for _, name := range metrics.MetricColumns {
		entry := kpiEntry{Threshold: thresholds.For(name), Alert: flags[name]}
		if v, ok := table.MetricValue(latest, name); ok {
			entry.Value = &v
		}
		kpis[name] = entry
	}

	resp := map[string]any{
		"hasData": true,
		"rows":    table.Len(),
		"kpis":    kpis,
	}
	if min, max, ok := table.TimeBounds(); ok {
		resp["minTimestamp"] = min.Format("2006-01-02 15:04:05")
		resp["maxTimestamp"] = max.Format("2006-01-02 15:04:05")
	}
	writeJSON(w, http.StatusOK, resp)
}

type logRow struct {
	Cells  map[string]string `json:"cells"`
	Alerts map[string]bool   `json:"alerts"`
}

// handleLogs serves the filtered row tail with per-cell alert flags for
// highlighting.
func (r *Router) handleLogs(w http.ResponseWriter, req *http.Request) {
	session := sessionFrom(req)
	table := r.cache.Get(req.Context(), session.ID)

	result, err := filterFromQuery(req, table)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	limit := 10
	if v := req.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	thresholds := session.Thresholds()
	filtered := result.Table
	start := filtered.Len() - limit
	if start < 0 {
		start = 0
	}

	rows := make([]logRow, 0, filtered.Len()-start)
	for _, row := range filtered.Rows[start:] {
		cells := make(map[string]string, len(filtered.Columns))
		for i, col := range filtered.Columns {
			if i < len(row.Cells) && !row.Cells[i].Null {
				cells[col] = row.Cells[i].Raw
			}
		}
		rows = append(rows, logRow{
			Cells:  cells,
			Alerts: reporting.AlertFlags(filtered, row, thresholds),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"label":    result.Label,
		"degraded": result.Degraded,
		"total":    filtered.Len(),
		"rows":     rows,
		"columns":  filtered.Columns,
	})
}

type chartPoint struct {
	Timestamp string  `json:"t"`
	Value     float64 `json:"v"`
}

// chartColumns maps the trend-view selection to metric columns.
var chartColumns = map[string][]string{
	"":       metrics.MetricColumns,
	"all":    metrics.MetricColumns,
	"cpu":    {metrics.ColumnCPU},
	"memory": {metrics.ColumnMemory},
	"disk":   {metrics.ColumnDisk},
}

// handleCharts serves time series for the trend charts. A malformed
// metric selection is reported as a non-fatal warning with empty series,
// not an error: the rest of the page must keep rendering.
func (r *Router) handleCharts(w http.ResponseWriter, req *http.Request) {
	session := sessionFrom(req)
	table := r.cache.Get(req.Context(), session.ID)

	result, err := filterFromQuery(req, table)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	metricChoice := req.URL.Query().Get("metric")
	columns, ok := chartColumns[metricChoice]
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{
			"label":   result.Label,
			"series":  map[string][]chartPoint{},
			"warning": "unknown metric selection: " + metricChoice,
		})
		return
	}

	filtered := result.Table
	series := make(map[string][]chartPoint, len(columns))
	for _, name := range columns {
		points := []chartPoint{}
		if filtered.HasColumn(name) {
			for _, row := range filtered.Rows {
				v, ok := filtered.MetricValue(row, name)
				if !ok || !row.HasTimestamp {
					continue
				}
				points = append(points, chartPoint{
					Timestamp: row.Timestamp.Format("2006-01-02 15:04:05"),
					Value:     v,
				})
			}
		}
		series[name] = points
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"label":  result.Label,
		"series": series,
	})
}

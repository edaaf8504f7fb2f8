// Package reporting implements the report pipeline: time-window
// filtering, aggregate statistics, threshold alerting, and the CSV and
// PDF serializers for the filtered result.
package reporting

import (
	"fmt"
	"time"

	"github.com/sysdash/sysdash/internal/metrics"
)

// WindowKind tags the time window variants.
type WindowKind int

const (
	WindowAll WindowKind = iota
	WindowLastNDays
	WindowCustom
)

// Window is a time range selection applied to the log table before
// analysis. Days is set for WindowLastNDays; Start/End (dates, midnight)
// for WindowCustom.
type Window struct {
	Kind  WindowKind
	Days  int
	Start time.Time
	End   time.Time
}

const dateLayout = "2006-01-02"

// windowDays maps the enumerated relative choices to day counts.
var windowDays = map[string]int{
	"7d":  7,
	"14d": 14,
	"30d": 30,
	"90d": 90,
}

// ParseWindow validates a window selection from the request surface.
// choice is one of all|7d|14d|30d|90d|custom; custom requires start and
// end dates in YYYY-MM-DD form with start <= end. An unroutable selection
// is the one hard failure in the pipeline and is rejected here, before
// filtering.
func ParseWindow(choice, start, end string) (Window, error) {
	switch {
	case choice == "" || choice == "all":
		return Window{Kind: WindowAll}, nil
	case windowDays[choice] > 0:
		return Window{Kind: WindowLastNDays, Days: windowDays[choice]}, nil
	case choice == "custom":
		if start == "" || end == "" {
			return Window{}, fmt.Errorf("custom window requires start and end dates")
		}
		startDate, err := time.Parse(dateLayout, start)
		if err != nil {
			return Window{}, fmt.Errorf("invalid start date %q: %w", start, err)
		}
		endDate, err := time.Parse(dateLayout, end)
		if err != nil {
			return Window{}, fmt.Errorf("invalid end date %q: %w", end, err)
		}
		if endDate.Before(startDate) {
			return Window{}, fmt.Errorf("end date %s is before start date %s", end, start)
		}
		return Window{Kind: WindowCustom, Start: startDate, End: endDate}, nil
	default:
		return Window{}, fmt.Errorf("unknown window %q", choice)
	}
}

// Label returns the human-readable form of the window.
func (w Window) Label() string {
	switch w.Kind {
	case WindowLastNDays:
		return fmt.Sprintf("Last %d days", w.Days)
	case WindowCustom:
		return fmt.Sprintf("Custom: %s to %s", w.Start.Format(dateLayout), w.End.Format(dateLayout))
	default:
		return "All"
	}
}

// ClampTo narrows a custom window to the given date bounds, mirroring the
// selection surface which only offers dates present in the data. Other
// window kinds are returned unchanged.
func (w Window) ClampTo(min, max time.Time) Window {
	if w.Kind != WindowCustom {
		return w
	}
	minDate := min.Truncate(24 * time.Hour)
	maxDate := max.Truncate(24 * time.Hour)
	if w.Start.Before(minDate) {
		w.Start = minDate
	}
	if w.End.After(maxDate) {
		w.End = maxDate
	}
	if w.End.Before(w.Start) {
		w.End = w.Start
	}
	return w
}

// FilterResult is the outcome of applying a window. Degraded marks the
// no-op path (no timestamp column, or no row with a valid timestamp)
// where the input is passed through unfiltered; Reason says why. Callers
// can assert on the degraded path distinctly from a genuine "All".
type FilterResult struct {
	Table    *metrics.Table
	Label    string
	Degraded bool
	Reason   string
}

// Filter applies the window to the table, resolving relative windows
// against now. The input table is never modified.
//
// Rows without a valid timestamp are excluded from every non-degraded
// result, including WindowAll.
func Filter(table *metrics.Table, window Window, now time.Time) FilterResult {
	if !table.HasColumn(metrics.ColumnTimestamp) {
		return FilterResult{Table: table, Label: "All", Degraded: true, Reason: "no timestamp column"}
	}
	if !table.HasValidTimestamps() {
		return FilterResult{Table: table, Label: "All", Degraded: true, Reason: "no valid timestamps"}
	}

	var keep func(metrics.Row) bool
	switch window.Kind {
	case WindowLastNDays:
		cutoff := now.AddDate(0, 0, -window.Days)
		keep = func(r metrics.Row) bool {
			return r.HasTimestamp && !r.Timestamp.Before(cutoff)
		}
	case WindowCustom:
		// Inclusive through the last second of the end date.
		start := window.Start
		end := window.End.Add(24*time.Hour - time.Second)
		keep = func(r metrics.Row) bool {
			return r.HasTimestamp && !r.Timestamp.Before(start) && !r.Timestamp.After(end)
		}
	default:
		keep = func(r metrics.Row) bool { return r.HasTimestamp }
	}

	return FilterResult{Table: table.Subset(keep), Label: window.Label()}
}

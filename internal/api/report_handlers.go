package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sysdash/sysdash/internal/reporting"
	"github.com/sysdash/sysdash/internal/telemetry"
)

// filteredForReport resolves the window for a report request. An empty
// filter result is a distinct state the caller must see (409), never an
// input to silent zero statistics.
func (r *Router) filteredForReport(w http.ResponseWriter, req *http.Request) (reporting.FilterResult, bool) {
	session := sessionFrom(req)
	table := r.cache.Get(req.Context(), session.ID)

	result, err := filterFromQuery(req, table)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return reporting.FilterResult{}, false
	}
	if result.Table.Len() == 0 {
		writeError(w, http.StatusConflict, "empty filter result; choose a wider range")
		return reporting.FilterResult{}, false
	}
	return result, true
}

// handleReportSummary serves the report bundle as JSON.
func (r *Router) handleReportSummary(w http.ResponseWriter, req *http.Request) {
	result, ok := r.filteredForReport(w, req)
	if !ok {
		return
	}

	session := sessionFrom(req)
	report := reporting.BuildReport(result.Table, result.Label, session.Thresholds())
	writeJSON(w, http.StatusOK, report)
}

// handleReportCSV streams the filtered table as a CSV download.
func (r *Router) handleReportCSV(w http.ResponseWriter, req *http.Request) {
	result, ok := r.filteredForReport(w, req)
	if !ok {
		return
	}

	data, err := reporting.WriteCSV(result.Table)
	if err != nil {
		log.Error().Err(err).Msg("CSV report generation failed")
		writeError(w, http.StatusInternalServerError, "report generation failed")
		return
	}

	telemetry.ReportsGenerated.WithLabelValues("csv").Inc()
	w.Header().Set("Content-Type", reporting.CSVContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", reporting.CSVFilename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// handleReportPDF builds the summary report and streams it as a PDF
// download. The generation timestamp enters as a content line; the
// serializer itself is deterministic.
func (r *Router) handleReportPDF(w http.ResponseWriter, req *http.Request) {
	result, ok := r.filteredForReport(w, req)
	if !ok {
		return
	}

	session := sessionFrom(req)
	report := reporting.BuildReport(result.Table, result.Label, session.Thresholds())
	lines := report.Lines(time.Now().Format("2006-01-02 15:04:05"))
	data := reporting.WritePDF(lines)

	telemetry.ReportsGenerated.WithLabelValues("pdf").Inc()
	w.Header().Set("Content-Type", reporting.PDFContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", reporting.PDFFilename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/sysdash/sysdash/internal/reporting"
)

// handleThresholds reads or saves the session's alert thresholds.
// Mutation happens only through an explicit PUT; there is no implicit
// persistence anywhere else.
func (r *Router) handleThresholds(w http.ResponseWriter, req *http.Request) {
	session := sessionFrom(req)

	switch req.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, session.Thresholds())
	case http.MethodPut:
		var t reporting.Thresholds
		if err := json.NewDecoder(req.Body).Decode(&t); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := t.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		session.SetThresholds(t)
		log.Info().
			Int("cpu", t.CPU).
			Int("memory", t.Memory).
			Int("disk", t.Disk).
			Msg("Thresholds saved")
		writeJSON(w, http.StatusOK, t)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleRefresh drops the session's cached log table so the next request
// reloads from the store.
func (r *Router) handleRefresh(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	session := sessionFrom(req)
	r.cache.Invalidate(session.ID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "refreshed"})
}

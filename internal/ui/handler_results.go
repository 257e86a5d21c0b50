package ui

import "net/http"

// getResults returns the summary metrics and the leads table for the
// requested scan parameters, velocity descending. Right after an
// asynchronous scan finished this is served from the report cache.
func (h *Handler) getResults(w http.ResponseWriter, r *http.Request) {
	req := h.scanRequest(r)

	report, err := h.Api.Results(r.Context(), req)
	if err != nil {
		h.writeScanError(w, r, err)
		return
	}

	if len(report.Records) == 0 {
		h.writeJson(w, r, http.StatusOK, map[string]interface{}{
			"report":  report,
			"warning": "No repositories found. Try a different topic.",
		})
		return
	}

	h.writeJson(w, r, http.StatusOK, map[string]interface{}{"report": report})
}

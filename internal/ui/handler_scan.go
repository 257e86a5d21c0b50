package ui

import (
	"encoding/json"
	"net/http"

	"github.com/thep200/github-sourcer/internal/preset"
	"github.com/thep200/github-sourcer/internal/sourcing"
)

// getPresets returns the thesis presets in their fixed display order.
func (h *Handler) getPresets(w http.ResponseWriter, r *http.Request) {
	h.writeJson(w, r, http.StatusOK, map[string]interface{}{
		"presets": preset.List(),
		"custom":  preset.Custom,
	})
}

// postScan starts an asynchronous scan. While one is running further scan
// requests are rejected with a conflict.
func (h *Handler) postScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	var req sourcing.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJson(w, r, http.StatusBadRequest, map[string]string{"error": "invalid scan request body"})
		return
	}

	msg, err := h.Api.StartScan(req)
	if err != nil {
		h.writeJson(w, r, http.StatusConflict, map[string]string{"error": err.Error()})
		return
	}

	h.writeJson(w, r, http.StatusAccepted, map[string]string{"message": msg})
}

// getScanStatus reports progress of the running scan, feeding the page's
// progress bar.
func (h *Handler) getScanStatus(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Api.GetScanStats()
	if err != nil {
		h.writeJson(w, r, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	h.writeJson(w, r, http.StatusOK, stats)
}

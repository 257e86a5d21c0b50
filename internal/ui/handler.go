package ui

import (
	"encoding/json"
	"html/template"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/thep200/github-sourcer/api"
	"github.com/thep200/github-sourcer/cfg"
	githubapi "github.com/thep200/github-sourcer/internal/github_api"
	"github.com/thep200/github-sourcer/internal/sourcing"
	"github.com/thep200/github-sourcer/pkg/log"
)

// Handler manages HTTP requests for the dashboard
type Handler struct {
	Logger  log.Logger
	Config  *cfg.Config
	Api     *api.SourcingAPI
	baseDir string
}

// NewHandler creates a new dashboard handler
func NewHandler(logger log.Logger, config *cfg.Config, sourcingApi *api.SourcingAPI) (*Handler, error) {
	baseDir := config.Ui.StaticDir
	if baseDir == "" {
		baseDir = "internal/ui/static"
	}

	return &Handler{
		Logger:  logger,
		Config:  config,
		Api:     sourcingApi,
		baseDir: baseDir,
	}, nil
}

// RegisterRoutes sets up the HTTP routes for the dashboard
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Static file server for CSS, JS, etc.
	fileServer := http.FileServer(http.Dir(h.baseDir))
	mux.Handle("/static/", http.StripPrefix("/static/", fileServer))

	// API routes
	mux.HandleFunc("/api/presets", h.getPresets)
	mux.HandleFunc("/api/scan", h.postScan)
	mux.HandleFunc("/api/scan/status", h.getScanStatus)
	mux.HandleFunc("/api/results", h.getResults)

	// Server-rendered charts
	mux.HandleFunc("/charts/velocity", h.getVelocityChart)
	mux.HandleFunc("/charts/distribution", h.getDistributionChart)
	mux.HandleFunc("/charts/growth", h.getGrowthChart)

	// HTML routes
	mux.HandleFunc("/", h.showHomePage)
}

// showHomePage renders the shell page
func (h *Handler) showHomePage(w http.ResponseWriter, r *http.Request) {
	templatePath := filepath.Join(h.baseDir, "index.html")
	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		h.Logger.Error(r.Context(), "Failed to parse template: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := tmpl.Execute(w, nil); err != nil {
		h.Logger.Error(r.Context(), "Failed to execute template: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

// scanRequest reads scan parameters from the query string. The results and
// chart routes share it so identical parameters hit the same cache entry.
func (h *Handler) scanRequest(r *http.Request) sourcing.Request {
	q := r.URL.Query()

	req := sourcing.Request{
		Preset: q.Get("preset"),
		Topic:  q.Get("topic"),
	}
	if v, err := strconv.Atoi(q.Get("minStars")); err == nil && v > 0 {
		req.MinStars = v
	}
	if v, err := strconv.Atoi(q.Get("days")); err == nil {
		req.LookbackDays = v
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		req.Limit = v
	}
	return req
}

func (h *Handler) writeJson(w http.ResponseWriter, r *http.Request, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.Logger.Error(r.Context(), "Failed to encode JSON response: %v", err)
	}
}

// writeScanError maps a scan failure to the warning banner payload. Rate
// limit errors carry the supply-a-token hint.
func (h *Handler) writeScanError(w http.ResponseWriter, r *http.Request, err error) {
	h.Logger.Error(r.Context(), "Scan failed: %v", err)

	payload := map[string]string{"error": err.Error()}
	if githubapi.IsRateLimit(err) {
		payload["hint"] = "GitHub rate limit hit. Supply a GITHUB_TOKEN to raise the quota."
	}
	h.writeJson(w, r, http.StatusBadGateway, payload)
}

// Package api is the public facade over the sourcing engine. The web UI and
// the CLI both go through it.
package api

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/thep200/github-sourcer/cfg"
	"github.com/thep200/github-sourcer/internal/sourcing"
	"github.com/thep200/github-sourcer/pkg/log"
)

// ScanStats is a snapshot of the scan currently running (or the last one).
type ScanStats struct {
	Topic     string    `json:"topic"`
	IsRunning bool      `json:"isRunning"`
	StartTime time.Time `json:"startTime"`
	Duration  string    `json:"duration"`
	Analyzed  int       `json:"analyzed"`
	Total     int       `json:"total"`
	LastError string    `json:"lastError"`
}

// SourcingAPI exposes scans to callers. Only one asynchronous scan runs at a
// time; synchronous Results calls share the engine's report cache.
type SourcingAPI struct {
	ctx         context.Context
	config      *cfg.Config
	logger      log.Logger
	engine      *sourcing.Engine
	scanning    bool
	scanStatsMu sync.RWMutex
	scanStats   *ScanStats
	lastReport  *sourcing.Report
}

func NewSourcingAPI() *SourcingAPI {
	return &SourcingAPI{
		scanStats: &ScanStats{},
	}
}

// NewSourcingAPIWith wires the facade from dependencies the caller already
// built. The cmd entrypoints use it; Initialize is the self-contained path.
func NewSourcingAPIWith(logger log.Logger, config *cfg.Config, engine *sourcing.Engine) *SourcingAPI {
	return &SourcingAPI{
		ctx:       context.Background(),
		config:    config,
		logger:    logger,
		engine:    engine,
		scanStats: &ScanStats{},
	}
}

// Initialize loads configuration and builds the engine.
func (a *SourcingAPI) Initialize(ctx context.Context) error {
	a.ctx = ctx

	var err error

	loader, _ := cfg.NewViperLoader()
	a.config, err = loader.Load()
	if err != nil {
		a.logger, _ = log.NewCslLogger()
		a.logger.Error(a.ctx, "Failed to load configuration: %v", err)
		return err
	}

	a.logger, err = log.NewCslLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	a.engine, err = sourcing.NewEngine(a.logger, a.config)
	if err != nil {
		a.logger.Error(a.ctx, "Failed to create sourcing engine: %v", err)
		return fmt.Errorf("failed to create sourcing engine: %w", err)
	}

	if a.config.GithubApi.AccessToken == "" {
		a.logger.Warn(a.ctx, "No GitHub access token configured, expect very low rate limits")
	}

	return nil
}

// StartScan kicks off an asynchronous scan. A second scan while one is
// running is rejected with a message rather than queued.
func (a *SourcingAPI) StartScan(req sourcing.Request) (string, error) {
	if a.engine == nil {
		return "", errors.New("sourcing api is not initialized")
	}

	a.scanStatsMu.Lock()
	if a.scanning {
		a.scanStatsMu.Unlock()
		return "", errors.New("a scan is already in progress")
	}
	a.scanning = true
	a.scanStats = &ScanStats{
		IsRunning: true,
		StartTime: time.Now(),
	}
	a.scanStatsMu.Unlock()

	go func() {
		report, err := a.engine.Scan(a.ctx, req)

		a.scanStatsMu.Lock()
		a.scanning = false
		a.scanStats.IsRunning = false
		a.scanStats.Duration = time.Since(a.scanStats.StartTime).String()
		if err != nil {
			a.scanStats.LastError = err.Error()
		} else {
			a.scanStats.Topic = report.Topic
			a.lastReport = report
		}
		a.scanStatsMu.Unlock()
	}()

	return "Scan started", nil
}

// GetScanStats returns a copy of the current scan statistics.
func (a *SourcingAPI) GetScanStats() (*ScanStats, error) {
	a.scanStatsMu.RLock()
	defer a.scanStatsMu.RUnlock()

	if a.scanStats == nil {
		return &ScanStats{}, nil
	}

	stats := *a.scanStats
	if stats.IsRunning {
		stats.Duration = time.Since(stats.StartTime).String()
	}
	if a.engine != nil {
		stats.Analyzed, stats.Total = a.engine.Progress()
	}
	return &stats, nil
}

// Results runs a scan synchronously. Identical requests inside the report
// cache TTL come back without touching the GitHub API, so calling this right
// after an asynchronous scan finished is cheap.
func (a *SourcingAPI) Results(ctx context.Context, req sourcing.Request) (*sourcing.Report, error) {
	if a.engine == nil {
		return nil, errors.New("sourcing api is not initialized")
	}
	return a.engine.Scan(ctx, req)
}

// LastReport returns the report of the most recent successful asynchronous
// scan, or nil when none completed yet.
func (a *SourcingAPI) LastReport() *sourcing.Report {
	a.scanStatsMu.RLock()
	defer a.scanStatsMu.RUnlock()
	return a.lastReport
}

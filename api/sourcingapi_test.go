package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thep200/github-sourcer/cfg"
	"github.com/thep200/github-sourcer/internal/sourcing"
	"github.com/thep200/github-sourcer/pkg/log"
)

// testApi wires a facade against a stub GitHub that answers after delay.
func testApi(t *testing.T, delay time.Duration) *SourcingAPI {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/search/repositories", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(delay)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"total_count": 1,
			"items": []map[string]interface{}{
				{
					"name":             "quiet",
					"full_name":        "t/quiet",
					"owner":            map[string]interface{}{"login": "t"},
					"html_url":         "https://github.com/t/quiet",
					"stargazers_count": 0,
					"created_at":       "2025-01-01T00:00:00Z",
				},
			},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	loader, err := cfg.NewMockLoader()
	require.NoError(t, err)
	config, err := loader.Load()
	require.NoError(t, err)
	config.GithubApi.ApiUrl = srv.URL + "/search/repositories"
	config.GithubApi.StargazersApiUrl = srv.URL + "/repos/{owner}/{repo}/stargazers"
	config.GithubApi.RequestsPerSecond = 0

	logger := log.NewCslLoggerTo(io.Discard)
	engine, err := sourcing.NewEngine(logger, config)
	require.NoError(t, err)

	return NewSourcingAPIWith(logger, config, engine)
}

func waitForScan(t *testing.T, a *SourcingAPI) *ScanStats {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		stats, err := a.GetScanStats()
		require.NoError(t, err)
		if !stats.IsRunning {
			return stats
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("scan did not finish in time")
	return nil
}

func TestStartScanLifecycle(t *testing.T) {
	a := testApi(t, 0)

	msg, err := a.StartScan(sourcing.Request{Topic: "rag"})
	require.NoError(t, err)
	assert.Equal(t, "Scan started", msg)

	stats := waitForScan(t, a)
	assert.Empty(t, stats.LastError)
	assert.Equal(t, "rag", stats.Topic)
	assert.Equal(t, 1, stats.Analyzed)
	assert.Equal(t, 1, stats.Total)
	assert.NotEmpty(t, stats.Duration)

	report := a.LastReport()
	require.NotNil(t, report)
	assert.Equal(t, "rag", report.Topic)
	require.Len(t, report.Records, 1)
	assert.Equal(t, "quiet", report.Records[0].Name)
}

func TestStartScanRejectsConcurrentScan(t *testing.T) {
	a := testApi(t, 300*time.Millisecond)

	_, err := a.StartScan(sourcing.Request{Topic: "rag"})
	require.NoError(t, err)

	_, err = a.StartScan(sourcing.Request{Topic: "wasm"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already in progress")

	waitForScan(t, a)

	// A new scan is accepted once the previous one finished
	_, err = a.StartScan(sourcing.Request{Topic: "rag"})
	assert.NoError(t, err)
	waitForScan(t, a)
}

func TestScanErrorIsRecordedInStats(t *testing.T) {
	a := testApi(t, 0)

	_, err := a.StartScan(sourcing.Request{})
	require.NoError(t, err)

	stats := waitForScan(t, a)
	assert.NotEmpty(t, stats.LastError)
	assert.Nil(t, a.LastReport())
}

func TestUninitializedApi(t *testing.T) {
	a := NewSourcingAPI()

	_, err := a.StartScan(sourcing.Request{Topic: "rag"})
	assert.Error(t, err)

	_, err = a.Results(context.Background(), sourcing.Request{Topic: "rag"})
	assert.Error(t, err)

	stats, err := a.GetScanStats()
	require.NoError(t, err)
	assert.False(t, stats.IsRunning)
}

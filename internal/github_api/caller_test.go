package githubapi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thep200/github-sourcer/cfg"
	"github.com/thep200/github-sourcer/pkg/log"
)

func testCaller(t *testing.T, handler http.Handler) (*Caller, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	loader, err := cfg.NewMockLoader()
	require.NoError(t, err)
	config, err := loader.Load()
	require.NoError(t, err)

	config.GithubApi.ApiUrl = srv.URL + "/search/repositories"
	config.GithubApi.StargazersApiUrl = srv.URL + "/repos/{owner}/{repo}/stargazers"
	config.GithubApi.AccessToken = "test-token"

	return NewCaller(log.NewCslLoggerTo(io.Discard), config), srv
}

func TestQualifier(t *testing.T) {
	assert.Equal(t, "topic:rag", Qualifier("rag", 0))
	assert.Equal(t, "topic:rag stars:>=100", Qualifier("rag", 100))
	assert.Equal(t, "topic:rag", Qualifier("  rag  ", 0))
}

func TestSearch(t *testing.T) {
	var gotReq *http.Request
	caller, _ := testCaller(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = r.Clone(r.Context())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"total_count": 2,
			"incomplete_results": false,
			"items": [
				{
					"id": 1,
					"name": "langstuff",
					"full_name": "acme/langstuff",
					"owner": {"login": "acme"},
					"description": "toolkit",
					"html_url": "https://github.com/acme/langstuff",
					"language": "Go",
					"stargazers_count": 1200,
					"created_at": "2025-01-02T03:04:05Z",
					"pushed_at": "2026-08-01T00:00:00Z"
				},
				{"id": 2, "name": "bare", "owner": {"login": "x"}}
			]
		}`))
	}))

	result, err := caller.Search(context.Background(), SearchQuery{Topic: "rag", MinStars: 50, PerPage: 30})
	require.NoError(t, err)

	q := gotReq.URL.Query()
	assert.Equal(t, "topic:rag stars:>=50", q.Get("q"))
	assert.Equal(t, "stars", q.Get("sort"))
	assert.Equal(t, "desc", q.Get("order"))
	assert.Equal(t, "30", q.Get("per_page"))
	assert.Equal(t, "1", q.Get("page"))
	assert.Equal(t, "token test-token", gotReq.Header.Get("Authorization"))

	assert.Equal(t, 2, result.TotalCount)
	require.Len(t, result.Items, 2)
	assert.Equal(t, "acme/langstuff", result.Items[0].FullName)
	assert.Equal(t, int64(1200), result.Items[0].StargazersCount)

	// Missing fields default silently
	assert.Empty(t, result.Items[1].Description)
	assert.Zero(t, result.Items[1].StargazersCount)
	assert.Empty(t, result.Items[1].CreatedAt)
}

func TestSearchRateLimited(t *testing.T) {
	reset := time.Now().Add(10 * time.Minute).Truncate(time.Second)
	caller, _ := testCaller(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))
		w.WriteHeader(http.StatusForbidden)
	}))

	_, err := caller.Search(context.Background(), SearchQuery{Topic: "rag"})
	require.Error(t, err)
	assert.True(t, IsRateLimit(err))

	var rle *RateLimitError
	require.ErrorAs(t, err, &rle)
	assert.True(t, rle.ResetAt.Equal(reset))
}

func TestSearchPlainForbiddenIsNotRateLimit(t *testing.T) {
	caller, _ := testCaller(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RateLimit-Remaining", "42")
		w.WriteHeader(http.StatusForbidden)
	}))

	_, err := caller.Search(context.Background(), SearchQuery{Topic: "rag"})
	require.Error(t, err)
	assert.False(t, IsRateLimit(err))
}

func TestStargazers(t *testing.T) {
	caller, _ := testCaller(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/vnd.github.v3.star+json", r.Header.Get("Accept"))
		assert.Equal(t, "/repos/acme/langstuff/stargazers", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("page"))
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"starred_at": "2026-08-19T10:00:00Z", "user": {"login": "fan"}},
			{"user": {"login": "no-timestamp"}}
		]`))
	}))

	stars, err := caller.Stargazers(context.Background(), "acme", "langstuff", 3, 100)
	require.NoError(t, err)
	require.Len(t, stars, 2)
	assert.Equal(t, "2026-08-19T10:00:00Z", stars[0].StarredAt)
	assert.Empty(t, stars[1].StarredAt)
}

func TestStargazersGoneRepoYieldsEmptyPage(t *testing.T) {
	caller, _ := testCaller(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	stars, err := caller.Stargazers(context.Background(), "gone", "repo", 1, 100)
	require.NoError(t, err)
	assert.Empty(t, stars)
}

func TestParseTime(t *testing.T) {
	got, ok := ParseTime("2026-08-19T10:00:00Z")
	assert.True(t, ok)
	assert.Equal(t, 2026, got.Year())

	_, ok = ParseTime("")
	assert.False(t, ok)

	_, ok = ParseTime("yesterday")
	assert.False(t, ok)
}

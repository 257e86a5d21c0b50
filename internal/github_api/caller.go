// Package githubapi is the HTTP caller for the two GitHub endpoints the
// sourcing engine consumes: repository search and the stargazers listing.
// Authentication uses the configured access token when present. Rate-limit
// responses are surfaced as *RateLimitError so callers can tell the user to
// supply a token instead of retrying blindly.

package githubapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/thep200/github-sourcer/cfg"
	"github.com/thep200/github-sourcer/pkg/log"
)

// searchResultCap is how deep GitHub lets search pagination go.
const searchResultCap = 1000

type Caller struct {
	Logger log.Logger
	Config *cfg.Config
	client *http.Client
}

// SearchQuery describes one repository-search call.
type SearchQuery struct {
	Topic    string
	MinStars int
	Page     int
	PerPage  int
}

// SearchResult maps the search response envelope.
type SearchResult struct {
	TotalCount        int                 `json:"total_count"`
	IncompleteResults bool                `json:"incomplete_results"`
	Items             []GithubAPIResponse `json:"items"`
}

func NewCaller(logger log.Logger, config *cfg.Config) *Caller {
	return &Caller{
		Logger: logger,
		Config: config,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Qualifier builds the search q parameter for a topic and minimum star count.
func Qualifier(topic string, minStars int) string {
	q := "topic:" + strings.TrimSpace(topic)
	if minStars > 0 {
		q += fmt.Sprintf(" stars:>=%d", minStars)
	}
	return q
}

// Search calls the repository search endpoint sorted by stars descending.
func (c *Caller) Search(ctx context.Context, query SearchQuery) (*SearchResult, error) {
	base, err := url.Parse(c.Config.GithubApi.ApiUrl)
	if err != nil {
		return nil, fmt.Errorf("invalid search api url: %w", err)
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	perPage := query.PerPage
	if perPage < 1 {
		perPage = 30
	}

	params := url.Values{}
	params.Set("q", Qualifier(query.Topic, query.MinStars))
	params.Set("sort", "stars")
	params.Set("order", "desc")
	params.Set("per_page", strconv.Itoa(perPage))
	params.Set("page", strconv.Itoa(page))
	base.RawQuery = params.Encode()

	c.Logger.Info(ctx, "Calling GitHub search: %s", base.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	c.authorize(req)

	resp, err := c.client.Do(req)
	if err != nil {
		c.Logger.Error(ctx, "cannot send request: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	c.Logger.Debug(ctx, "Rate limit remaining: %s", resp.Header.Get("X-RateLimit-Remaining"))

	if err := c.handleRateLimit(ctx, resp); err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot received response: %v", resp.Status)
	}

	result := &SearchResult{}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return nil, err
	}

	c.Logger.Info(ctx, "Total repositories found: %d, page: %d, items received: %d",
		result.TotalCount, page, len(result.Items))

	if page*perPage > searchResultCap {
		c.Logger.Warn(ctx, "GitHub API only provides access to the first %d search results", searchResultCap)
	}

	return result, nil
}

// Stargazers fetches one page of a repository's stargazers with the star
// media type, so entries carry starred_at timestamps. A 404 means the
// repository went away between search and analysis and yields an empty page.
func (c *Caller) Stargazers(ctx context.Context, owner, repo string, page, perPage int) ([]StargazerResponse, error) {
	starsUrl := strings.ReplaceAll(c.Config.GithubApi.StargazersApiUrl, "{owner}", url.PathEscape(owner))
	starsUrl = strings.ReplaceAll(starsUrl, "{repo}", url.PathEscape(repo))

	parsed, err := url.Parse(starsUrl)
	if err != nil {
		return nil, fmt.Errorf("invalid stargazers api url: %w", err)
	}
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))
	parsed.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3.star+json")
	c.authorize(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.handleRateLimit(ctx, resp); err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusNotFound {
		return []StargazerResponse{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot received response: %v", resp.Status)
	}

	var stars []StargazerResponse
	if err := json.NewDecoder(resp.Body).Decode(&stars); err != nil {
		return nil, err
	}

	return stars, nil
}

func (c *Caller) authorize(req *http.Request) {
	req.Header.Set("User-Agent", c.Config.App.Name)
	if c.Config.GithubApi.AccessToken != "" {
		req.Header.Set("Authorization", fmt.Sprintf("token %s", c.Config.GithubApi.AccessToken))
	}
}

// handleRateLimit turns a 403 with an exhausted quota into a *RateLimitError
// carrying the reset time from the X-RateLimit-Reset header.
func (c *Caller) handleRateLimit(ctx context.Context, resp *http.Response) error {
	rateRemaining := resp.Header.Get("X-RateLimit-Remaining")
	if resp.StatusCode != http.StatusForbidden || rateRemaining != "0" {
		return nil
	}

	resetTimeStr := resp.Header.Get("X-RateLimit-Reset")
	resetTimeInt, err := strconv.ParseInt(resetTimeStr, 10, 64)
	if err != nil {
		// Reset time unknown, fall back to the configured wait
		waitTime := time.Duration(c.Config.GithubApi.RateLimitResetMin) * time.Minute
		c.Logger.Warn(ctx, "Rate limit hit! Reset time unknown, assuming %v", waitTime)
		return &RateLimitError{ResetAt: time.Now().Add(waitTime)}
	}

	resetTime := time.Unix(resetTimeInt, 0)
	c.Logger.Warn(ctx, "Rate limit hit! GitHub API quota exhausted until %v", resetTime.Format(time.RFC3339))
	return &RateLimitError{ResetAt: resetTime}
}

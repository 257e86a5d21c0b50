// Package sourcing runs the scan pipeline: resolve the topic, search GitHub,
// measure per-repository star velocity, classify tiers, and produce a sorted
// report with summary metrics.
package sourcing

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/thep200/github-sourcer/cfg"
	githubapi "github.com/thep200/github-sourcer/internal/github_api"
	"github.com/thep200/github-sourcer/internal/limiter"
	"github.com/thep200/github-sourcer/internal/preset"
	"github.com/thep200/github-sourcer/internal/velocity"
	"github.com/thep200/github-sourcer/pkg/cache"
	"github.com/thep200/github-sourcer/pkg/log"
	"golang.org/x/sync/errgroup"
)

// Request describes one scan. Preset and Topic are alternatives: a preset
// label resolves to its fixed topic, a free-text topic passes through.
// Zero values fall back to the configured defaults.
type Request struct {
	Preset       string `json:"preset"`
	Topic        string `json:"topic"`
	MinStars     int    `json:"minStars"`
	LookbackDays int    `json:"lookbackDays"`
	Limit        int    `json:"limit"`
}

// Engine is the sourcing pipeline. One engine serves all scans; reports are
// memoized per (topic, minStars, lookbackDays) for the configured TTL.
type Engine struct {
	Logger  log.Logger
	Config  *cfg.Config
	Caller  *githubapi.Caller
	limiter *limiter.RateLimiter
	meter   *velocity.Meter
	reports *cache.Cache[string, *Report]

	analyzed atomic.Int64
	total    atomic.Int64
}

func NewEngine(logger log.Logger, config *cfg.Config) (*Engine, error) {
	if config == nil {
		return nil, errors.New("config is required")
	}

	caller := githubapi.NewCaller(logger, config)
	throttle := time.Duration(config.GithubApi.ThrottleDelay) * time.Millisecond
	lim := limiter.NewRateLimiter(config.GithubApi.RequestsPerSecond, throttle)

	e := &Engine{
		Logger:  logger,
		Config:  config,
		Caller:  caller,
		limiter: lim,
		reports: cache.New[string, *Report](time.Duration(config.Sourcing.CacheTtlSeconds) * time.Second),
	}
	e.meter = velocity.NewMeter(&throttledLister{caller: caller, limiter: lim}, config.Sourcing.MaxStargazerPages)
	return e, nil
}

// throttledLister puts the client-side request limiter in front of every
// stargazers call.
type throttledLister struct {
	caller  *githubapi.Caller
	limiter *limiter.RateLimiter
}

func (t *throttledLister) Stargazers(ctx context.Context, owner, repo string, page, perPage int) ([]githubapi.StargazerResponse, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return t.caller.Stargazers(ctx, owner, repo, page, perPage)
}

// Scan runs the pipeline for one request. A search failure aborts the whole
// scan; a failed star-history walk only degrades that repository to its
// estimated velocity. Identical requests inside the cache TTL return the
// memoized report without touching the API.
func (e *Engine) Scan(ctx context.Context, req Request) (*Report, error) {
	topic, err := e.resolveTopic(req)
	if err != nil {
		return nil, err
	}

	days := req.LookbackDays
	if days < 1 || days > 30 {
		days = e.Config.Sourcing.LookbackDays
	}
	limit := req.Limit
	if limit < 1 || limit > 100 {
		limit = e.Config.Sourcing.MaxRepos
	}

	key := fmt.Sprintf("%s|%d|%d|%d", topic, req.MinStars, days, limit)
	if report, ok := e.reports.Get(key); ok {
		e.Logger.Info(ctx, "Serving cached report for topic %s", topic)
		return report, nil
	}

	e.analyzed.Store(0)
	e.total.Store(0)

	if err := e.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	result, err := e.Caller.Search(ctx, githubapi.SearchQuery{
		Topic:    topic,
		MinStars: req.MinStars,
		PerPage:  limit,
	})
	if err != nil {
		return nil, fmt.Errorf("repository search failed: %w", err)
	}

	e.total.Store(int64(len(result.Items)))
	lookback := time.Duration(days) * 24 * time.Hour

	// Fan the star-history walks out over a bounded worker group. Each
	// worker writes only its own index, so the report is deterministic
	// regardless of completion order.
	records := make([]Record, len(result.Items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.velocityWorkers())
	for i, item := range result.Items {
		i, item := i, item
		g.Go(func() error {
			records[i] = e.analyze(gctx, item, lookback)
			e.analyzed.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Velocity != records[j].Velocity {
			return records[i].Velocity > records[j].Velocity
		}
		return records[i].Stars > records[j].Stars
	})

	report := &Report{
		Topic:        topic,
		MinStars:     req.MinStars,
		LookbackDays: days,
		GeneratedAt:  time.Now(),
		Summary:      summarize(records),
		Records:      records,
	}
	e.reports.Set(key, report)

	e.Logger.Info(ctx, "Scan complete: topic=%s repos=%d breakouts=%d",
		topic, report.Summary.Scanned, report.Summary.BreakoutSignals)
	return report, nil
}

// Progress reports how many repositories of the current scan have been
// analyzed so far.
func (e *Engine) Progress() (analyzed, total int) {
	return int(e.analyzed.Load()), int(e.total.Load())
}

func (e *Engine) analyze(ctx context.Context, item githubapi.GithubAPIResponse, lookback time.Duration) Record {
	measured, err := e.meter.Measure(ctx, item.Owner.Login, item.Name, item.StargazersCount, lookback)
	if err != nil {
		// Degrade to whatever was counted; the estimated column still works.
		e.Logger.Warn(ctx, "Star history walk failed for %s: %v", item.FullName, err)
	}

	created, _ := githubapi.ParseTime(item.CreatedAt)
	pushed, _ := githubapi.ParseTime(item.PushedAt)

	return Record{
		Name:        item.Name,
		Owner:       item.Owner.Login,
		FullName:    item.FullName,
		Description: item.Description,
		Url:         item.HtmlUrl,
		Language:    item.Language,
		Stars:       item.StargazersCount,
		Forks:       item.ForksCount,
		Watchers:    item.WatchersCount,
		OpenIssues:  item.OpenIssuesCount,
		CreatedAt:   formatDate(created),
		PushedAt:    formatDate(pushed),
		Velocity:    measured,
		EstVelocity: velocity.Estimate(item.StargazersCount, created, time.Now()),
		Tier:        velocity.Classify(item.StargazersCount, measured),
	}
}

func (e *Engine) resolveTopic(req Request) (string, error) {
	if req.Preset != "" && req.Preset != preset.Custom {
		return preset.Resolve(req.Preset)
	}
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return "", errors.New("a thesis preset or a topic is required")
	}
	return topic, nil
}

func (e *Engine) velocityWorkers() int {
	if e.Config.Sourcing.VelocityWorkers < 1 {
		return 1
	}
	return e.Config.Sourcing.VelocityWorkers
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

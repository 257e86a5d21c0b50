package velocity

import (
	"context"
	"time"

	githubapi "github.com/thep200/github-sourcer/internal/github_api"
)

const (
	starsPerPage = 100

	// GitHub serves at most 400 stargazer pages (40k stars); requests beyond
	// that return an empty list.
	starPageCap = 400

	defaultMaxPages = 5
)

// StargazerLister is the slice of the GitHub caller the meter needs.
type StargazerLister interface {
	Stargazers(ctx context.Context, owner, repo string, page, perPage int) ([]githubapi.StargazerResponse, error)
}

// Meter measures stars gained inside a lookback window by walking the
// stargazers listing backward from its last page. The listing is ordered
// oldest first, so the newest stars sit at the tail; the walk stops at the
// first star older than the cutoff.
type Meter struct {
	Lister   StargazerLister
	MaxPages int
	Now      func() time.Time
}

func NewMeter(lister StargazerLister, maxPages int) *Meter {
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}
	return &Meter{
		Lister:   lister,
		MaxPages: maxPages,
		Now:      time.Now,
	}
}

// Measure counts stars gained within lookback of now. A repository with zero
// stars measures zero without any API call. A failed page fetch returns the
// count accumulated so far together with the error; callers treat the partial
// count as the measurement and fall back to the estimated velocity column.
func (m *Meter) Measure(ctx context.Context, owner, repo string, totalStars int64, lookback time.Duration) (int, error) {
	if totalStars == 0 {
		return 0, nil
	}

	lastPage := int(totalStars/starsPerPage) + 1
	if lastPage > starPageCap {
		lastPage = starPageCap
	}

	cutoff := m.Now().Add(-lookback)
	count := 0

	page := lastPage
	for checked := 0; checked < m.MaxPages && page > 0; checked++ {
		stars, err := m.Lister.Stargazers(ctx, owner, repo, page, starsPerPage)
		if err != nil {
			return count, err
		}
		if len(stars) == 0 {
			break
		}

		// Newest entries last within a page, so iterate in reverse.
		for i := len(stars) - 1; i >= 0; i-- {
			starredAt, ok := githubapi.ParseTime(stars[i].StarredAt)
			if !ok {
				continue
			}
			if starredAt.After(cutoff) {
				count++
			} else {
				return count, nil
			}
		}
		page--
	}

	return count, nil
}

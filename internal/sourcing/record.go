package sourcing

import (
	"time"

	"github.com/thep200/github-sourcer/internal/velocity"
)

// Record is one row of the leads table: identity, popularity, recency, and
// the derived velocity fields. Records are rebuilt from scratch on every scan
// and only live until the next one, nothing persists them.
type Record struct {
	Name        string        `json:"name"`
	Owner       string        `json:"owner"`
	FullName    string        `json:"fullName"`
	Description string        `json:"description"`
	Url         string        `json:"url"`
	Language    string        `json:"language"`
	Stars       int64         `json:"stars"`
	Forks       int64         `json:"forks"`
	Watchers    int64         `json:"watchers"`
	OpenIssues  int64         `json:"openIssues"`
	CreatedAt   string        `json:"createdAt"`
	PushedAt    string        `json:"pushedAt"`
	Velocity    int           `json:"velocity"`
	EstVelocity float64       `json:"estVelocity"`
	Tier        velocity.Tier `json:"tier"`
}

// Summary is the market-pulse row above the table.
type Summary struct {
	Scanned         int     `json:"scanned"`
	BreakoutSignals int     `json:"breakoutSignals"`
	AvgVelocity     float64 `json:"avgVelocity"`
	TopMover        string  `json:"topMover"`
}

// Report is the result of one scan, ordered by velocity descending (ties
// broken by stars descending).
type Report struct {
	Topic        string    `json:"topic"`
	MinStars     int       `json:"minStars"`
	LookbackDays int       `json:"lookbackDays"`
	GeneratedAt  time.Time `json:"generatedAt"`
	Summary      Summary   `json:"summary"`
	Records      []Record  `json:"records"`
}

func summarize(records []Record) Summary {
	s := Summary{Scanned: len(records)}
	if len(records) == 0 {
		return s
	}

	total := 0
	for _, r := range records {
		total += r.Velocity
		if r.Tier.Breakout() {
			s.BreakoutSignals++
		}
	}
	s.AvgVelocity = float64(total) / float64(len(records))
	s.TopMover = records[0].Name
	return s
}

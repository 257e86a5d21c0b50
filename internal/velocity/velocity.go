// Package velocity computes star velocity and assigns growth tiers.
//
// Two numbers exist side by side: the measured velocity (stars gained inside
// the lookback window, counted from the stargazers listing) and the estimated
// velocity (lifetime stars divided by repository age in weeks, a proxy used
// when star history is not retrievable).
package velocity

import "time"

// Tier is the growth classification of a repository.
type Tier string

const (
	TierBreakout     Tier = "Breakout"
	TierBreakoutHuge Tier = "Breakout (Huge)"
	TierGrowing      Tier = "Growing"
	TierEarly        Tier = "Early"
)

// Tier boundaries are fixed, they are deliberately not configuration.
const (
	breakoutPerWeek = 50
	growingPerWeek  = 10

	// GitHub stops serving stargazer pages past 40k stars, so a huge repo
	// with an unreachable history tail measures zero. That is still a
	// breakout signal, not an early-stage one.
	hugeStarFloor = 40000
)

// Classify assigns the tier for a repository from its lifetime star count and
// the measured velocity in stars per week.
func Classify(totalStars int64, measured int) Tier {
	if totalStars > hugeStarFloor && measured == 0 {
		return TierBreakoutHuge
	}
	if measured > breakoutPerWeek {
		return TierBreakout
	}
	if measured > growingPerWeek {
		return TierGrowing
	}
	return TierEarly
}

// Breakout reports whether the tier counts as a breakout signal in summaries.
func (t Tier) Breakout() bool {
	return t == TierBreakout || t == TierBreakoutHuge
}

const (
	hoursPerWeek = 24 * 7

	// minAgeWeeks keeps the estimate finite for repositories created moments
	// ago.
	minAgeWeeks = 1e-6
)

// Estimate is the proxy velocity: lifetime stars divided by repository age in
// weeks. It is non-negative and, for a fixed age, monotonic in stars. A zero
// createdAt (the missing-field default) yields an estimate near zero rather
// than an error.
func Estimate(stars int64, createdAt, now time.Time) float64 {
	if stars <= 0 {
		return 0
	}
	weeks := now.Sub(createdAt).Hours() / hoursPerWeek
	if weeks < minAgeWeeks {
		weeks = minAgeWeeks
	}
	return float64(stars) / weeks
}

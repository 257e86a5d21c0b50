package velocity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		stars    int64
		measured int
		want     Tier
	}{
		{name: "breakout above threshold", stars: 100, measured: 51, want: TierBreakout},
		{name: "breakout well above", stars: 100, measured: 500, want: TierBreakout},
		{name: "exactly 50 is growing", stars: 100, measured: 50, want: TierGrowing},
		{name: "growing above threshold", stars: 100, measured: 11, want: TierGrowing},
		{name: "exactly 10 is early", stars: 100, measured: 10, want: TierEarly},
		{name: "zero velocity is early", stars: 100, measured: 0, want: TierEarly},
		{name: "huge repo with unreachable tail", stars: 50000, measured: 0, want: TierBreakoutHuge},
		{name: "huge repo with measured velocity", stars: 50000, measured: 60, want: TierBreakout},
		{name: "exactly 40000 stars is not huge", stars: 40000, measured: 0, want: TierEarly},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.stars, tt.measured))
		})
	}
}

func TestTierBreakout(t *testing.T) {
	assert.True(t, TierBreakout.Breakout())
	assert.True(t, TierBreakoutHuge.Breakout())
	assert.False(t, TierGrowing.Breakout())
	assert.False(t, TierEarly.Breakout())
}

func TestEstimate(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	t.Run("one week old", func(t *testing.T) {
		created := now.Add(-7 * 24 * time.Hour)
		assert.InDelta(t, 70.0, Estimate(70, created, now), 0.001)
	})

	t.Run("zero stars", func(t *testing.T) {
		assert.Zero(t, Estimate(0, now.Add(-time.Hour), now))
	})

	t.Run("negative stars clamp to zero", func(t *testing.T) {
		assert.Zero(t, Estimate(-5, now.Add(-time.Hour), now))
	})

	t.Run("created just now stays finite", func(t *testing.T) {
		got := Estimate(10, now, now)
		assert.Greater(t, got, 0.0)
		assert.InDelta(t, 10/minAgeWeeks, got, 1.0)
	})

	t.Run("monotonic in stars for fixed age", func(t *testing.T) {
		created := now.Add(-30 * 24 * time.Hour)
		prev := -1.0
		for _, stars := range []int64{0, 1, 10, 100, 1000, 100000} {
			got := Estimate(stars, created, now)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.Greater(t, got, prev)
			prev = got
		}
	})
}

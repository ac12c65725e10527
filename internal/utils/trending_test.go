package utils

import (
	"testing"
	"time"
)

func TestCalculateTrendingScoreDecays(t *testing.T) {
	fresh := CalculateTrendingScore(time.Now(), 10, 0, 2, 3, 5)
	stale := CalculateTrendingScore(time.Now().Add(-48*time.Hour), 10, 0, 2, 3, 5)

	if fresh <= stale {
		t.Errorf("fresh score %f should beat stale score %f", fresh, stale)
	}
}

func TestCalculateTrendingScoreRewardsEngagement(t *testing.T) {
	now := time.Now()
	quiet := CalculateTrendingScore(now, 1, 0, 0, 0, 0)
	busy := CalculateTrendingScore(now, 10, 0, 5, 5, 10)

	if busy <= quiet {
		t.Errorf("busy score %f should beat quiet score %f", busy, quiet)
	}
}

func TestCalculateTrendingScoreNeverNegative(t *testing.T) {
	// Heavily downvoted content floors at zero rather than going negative
	score := CalculateTrendingScore(time.Now(), 1, 50, 0, 0, 0)
	if score < 0 {
		t.Errorf("score = %f, want >= 0", score)
	}
}

package utils

import (
	"math"
	"time"
)

type TrendConfig struct {
	Gravity       float64 // time gravity
	WeightFollow  float64
	WeightComment float64
	WeightUpvote  float64
	WeightRating  float64
	ScaleFactor   float64
}

var DefaultTrendConfig = TrendConfig{
	Gravity:       1.5,
	WeightFollow:  3.0,
	WeightComment: 2.0,
	WeightUpvote:  1.0,
	WeightRating:  1.5,
	ScaleFactor:   100.0, // keeps scores in a 0-100 "temperature" band
}

// CalculateTrendingScore turns engagement counts into a time-decayed score.
// Views are deliberately left out of the weighted sum: their magnitude dwarfs
// the other signals, so they only contribute through the log smoothing floor.
func CalculateTrendingScore(t time.Time, upvotes, downvotes, follows, ratings, comments int) float64 {
	hours := time.Since(t).Hours()

	weightedSum := (float64(upvotes) * DefaultTrendConfig.WeightUpvote) +
		(float64(comments) * DefaultTrendConfig.WeightComment) +
		(float64(follows) * DefaultTrendConfig.WeightFollow) +
		(float64(ratings) * DefaultTrendConfig.WeightRating) -
		float64(downvotes)

	if weightedSum < 0 {
		weightedSum = 0 // log10 below needs a non-negative input
	}

	logScore := math.Log10(weightedSum + 1)
	numerator := logScore * DefaultTrendConfig.ScaleFactor
	decay := math.Pow(hours+2, DefaultTrendConfig.Gravity)

	return numerator / decay
}

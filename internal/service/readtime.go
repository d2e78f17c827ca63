package service

import (
	"math"
	"strings"
)

// wordsPerMinute is the average adult reading speed the estimate divides by.
const wordsPerMinute = 265.0

// EstimateReadTime returns the estimated reading time of a markdown
// article in whole minutes, rounding half away from zero. Markdown
// syntax and embedded media are counted as plain words; that skews the
// estimate slightly high on image-heavy posts and is accepted.
func EstimateReadTime(articleContent string) int {
	words := len(strings.Fields(articleContent))
	if words == 0 {
		return 0
	}
	return int(math.Round(float64(words) / wordsPerMinute))
}

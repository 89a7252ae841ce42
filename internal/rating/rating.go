// Package rating derives the aggregate rating for a game from its review
// set. Pure computation, no state.
package rating

import (
	"fmt"
	"math"
)

// Summary is the aggregate rating for one game. Average is nil when the
// game has no reviews.
type Summary struct {
	Average *float64
	Count   int
}

// Summarize computes the mean of the given ratings. The mean is kept
// un-rounded; rounding happens only at display time.
func Summarize(ratings []int) Summary {
	if len(ratings) == 0 {
		return Summary{}
	}

	sum := 0
	for _, r := range ratings {
		sum += r
	}

	avg := float64(sum) / float64(len(ratings))
	return Summary{Average: &avg, Count: len(ratings)}
}

// Display returns the average rounded to one decimal, or "no ratings"
// when the game has no reviews.
func (s Summary) Display() string {
	if s.Average == nil {
		return "no ratings"
	}
	return fmt.Sprintf("%.1f", *s.Average)
}

// Stars returns the filled-star count for the average: nearest integer,
// half rounds up, clamped to [0,5]. A nil average yields 0.
func (s Summary) Stars() int {
	if s.Average == nil {
		return 0
	}
	return Stars(*s.Average)
}

// Stars rounds an average rating to a whole star count, half up, clamped
// to [0,5].
func Stars(avg float64) int {
	n := int(math.Floor(avg + 0.5))
	if n < 0 {
		return 0
	}
	if n > 5 {
		return 5
	}
	return n
}

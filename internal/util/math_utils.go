package util

import "math"

// Round1 rounds a value to one decimal place. Percentage scores are stored
// and serialized with a single decimal of precision; the rounding happens at
// the serialization boundary, not inside the grader.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

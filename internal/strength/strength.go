// Package strength derives the 1-5 relationship strength grade.
//
// The grade is a deliberately narrow function of contact recency and
// priority tier. Interaction quality, mood and other signals stay out of
// it; richer context lives in memories and the reminder feed.
package strength

import "github.com/calebnewtonusc/webcalhacks25/internal/model"

// thresholds maps a tier to ascending day breakpoints for grades 5 down
// to 2. Past the last breakpoint the grade is 1.
var thresholds = map[model.Priority][5]int{
	model.P1: {3, 7, 10, 14, 21},  // weekly contact goal
	model.P2: {7, 14, 21, 28, 35}, // bi-weekly contact goal
	model.P3: {15, 30, 45, 60, 90}, // monthly contact goal
}

// Score returns the strength grade for the elapsed days since last
// contact under the given tier. A brand-new contact (zero days) is
// neutral, not excellent. Total for all non-negative inputs and
// monotonically non-increasing in days.
func Score(daysSinceContact int, priority model.Priority) int {
	if daysSinceContact <= 0 {
		return 3
	}
	t, ok := thresholds[priority]
	if !ok {
		t = thresholds[model.P3]
	}
	for i, limit := range t {
		if daysSinceContact <= limit {
			return 5 - i
		}
	}
	return 1
}

package strength

import (
	"testing"

	"github.com/calebnewtonusc/webcalhacks25/internal/model"
)

func TestScoreZeroDaysIsNeutral(t *testing.T) {
	for _, p := range []model.Priority{model.P1, model.P2, model.P3} {
		if got := Score(0, p); got != 3 {
			t.Errorf("Score(0, %s) = %d, want 3", p, got)
		}
	}
}

func TestScoreThresholds(t *testing.T) {
	tests := []struct {
		days     int
		priority model.Priority
		want     int
	}{
		{1, model.P1, 5},
		{3, model.P1, 5},
		{4, model.P1, 4},
		{7, model.P1, 4},
		{10, model.P1, 3},
		{14, model.P1, 2},
		{21, model.P1, 1},
		{22, model.P1, 1},
		{7, model.P2, 5},
		{14, model.P2, 4},
		{21, model.P2, 3},
		{35, model.P2, 1},
		{36, model.P2, 1},
		{15, model.P3, 5},
		{30, model.P3, 4},
		{45, model.P3, 3},
		{60, model.P3, 2},
		{90, model.P3, 1},
		{365, model.P3, 1},
	}
	for _, tt := range tests {
		if got := Score(tt.days, tt.priority); got != tt.want {
			t.Errorf("Score(%d, %s) = %d, want %d", tt.days, tt.priority, got, tt.want)
		}
	}
}

func TestScoreMonotonicallyNonIncreasing(t *testing.T) {
	for _, p := range []model.Priority{model.P1, model.P2, model.P3} {
		prev := 5
		for days := 1; days <= 120; days++ {
			got := Score(days, p)
			if got < 1 || got > 5 {
				t.Fatalf("Score(%d, %s) = %d out of range", days, p, got)
			}
			if got > prev {
				t.Fatalf("Score(%d, %s) = %d increased from %d", days, p, got, prev)
			}
			prev = got
		}
	}
}

func TestScoreUnknownPriorityFallsBackToP3(t *testing.T) {
	if got := Score(20, model.Priority("P9")); got != Score(20, model.P3) {
		t.Errorf("unknown priority: got %d, want P3 grade %d", got, Score(20, model.P3))
	}
}

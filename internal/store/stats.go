package store

import (
	"fmt"
	"math"
)

// NetworkStats summarizes the state of the whole network.
type NetworkStats struct {
	Total           int            `json:"total"`
	AverageStrength float64        `json:"average_strength"`
	Strong          int            `json:"strong"`          // grade >= 4
	NeedsAttention  int            `json:"needs_attention"` // grade <= 2
	Interactions    int            `json:"interactions"`
	ByRelationship  map[string]int `json:"by_relationship"`
	ByPriority      map[string]int `json:"by_priority"`
	ByStrength      map[string]int `json:"by_strength"`
	Recommendations []string       `json:"recommendations,omitempty"`
}

// Stats computes network statistics and balance recommendations.
func (s *ConnectionStore) Stats() NetworkStats {
	st := NetworkStats{
		ByRelationship: map[string]int{},
		ByPriority:     map[string]int{},
		ByStrength:     map[string]int{"1": 0, "2": 0, "3": 0, "4": 0, "5": 0},
	}

	sum := 0
	for _, c := range s.conns {
		st.Total++
		sum += c.Strength
		st.Interactions += len(c.Interactions)
		st.ByRelationship[string(c.Relationship)]++
		st.ByPriority[string(c.Priority)]++
		st.ByStrength[fmt.Sprintf("%d", c.Strength)]++
		if c.Strength >= 4 {
			st.Strong++
		}
		if c.Strength <= 2 {
			st.NeedsAttention++
		}
	}
	if st.Total > 0 {
		st.AverageStrength = math.Round(float64(sum)/float64(st.Total)*10) / 10
	}

	if st.ByPriority["P1"] > 10 {
		st.Recommendations = append(st.Recommendations,
			"You have many P1 (weekly) connections. Consider if all are truly high priority.")
	}
	if st.Total > 0 && len(st.ByRelationship) < 3 {
		st.Recommendations = append(st.Recommendations,
			"Consider diversifying your network across different relationship types.")
	}
	weak := st.ByStrength["1"] + st.ByStrength["2"]
	if st.Total > 0 && float64(weak) > float64(st.Total)*0.3 {
		st.Recommendations = append(st.Recommendations,
			"30%+ of your connections are weak. Focus on strengthening key relationships.")
	}

	return st
}

package store

import (
	"github.com/calebnewtonusc/webcalhacks25/internal/model"
	"github.com/calebnewtonusc/webcalhacks25/internal/strength"
)

// SeedPerson is one entry of an onboarding export: a name plus whatever
// the user volunteered during setup.
type SeedPerson struct {
	Name                  string             `json:"name"`
	Priority              model.Priority     `json:"priority,omitempty"`
	Relationship          model.Relationship `json:"relationship,omitempty"`
	RecentInteractionHint string             `json:"recent_interaction,omitempty"` // "this-week" or "this-month"
}

// Seed populates the store from onboarding data. Unset priority
// defaults to P3, unset relationship to other. A recent-interaction
// hint seeds one interaction at a coarse date inside the hinted window;
// without a hint last contact starts 30 days back. Entries with empty
// names are skipped.
// Returns the number of connections created.
func (s *ConnectionStore) Seed(people []SeedPerson) int {
	created := 0
	for _, p := range people {
		if p.Name == "" {
			continue
		}
		prio := p.Priority
		if prio == "" {
			prio = model.P3
		}
		rel := p.Relationship
		if rel == "" {
			rel = model.RelOther
		}

		var daysAgo int
		switch p.RecentInteractionHint {
		case "this-week":
			daysAgo = s.entropy.Intn(7)
		case "this-month":
			daysAgo = 7 + s.entropy.Intn(23)
		default:
			daysAgo = 30
		}
		last := s.now().AddDate(0, 0, -daysAgo)

		c, err := s.Add(ConnectionDraft{
			Name:         p.Name,
			Relationship: rel,
			Priority:     prio,
			LastContact:  last,
			Tags:         []string{string(rel), string(prio)},
		})
		if err != nil {
			continue
		}
		if p.RecentInteractionHint != "" {
			s.LogInteraction(c.ID, InteractionDraft{
				Type:    model.TypeSocial,
				Date:    last,
				Notes:   "Recent catch-up mentioned during onboarding",
				Quality: 8,
			})
		}
		created++
	}
	return created
}

// Restore rebuilds the store from a persisted snapshot without emitting
// events; the restored state is not a mutation of this session.
func (s *ConnectionStore) Restore(conns []model.Connection, memories []model.Memory) {
	s.conns = s.conns[:0]
	s.byID = make(map[string]*model.Connection, len(conns))
	for i := range conns {
		c := conns[i]
		s.conns = append(s.conns, &c)
		s.byID[c.ID] = &c
	}
	s.memories = append(s.memories[:0], memories...)
	// Stored grades may be stale relative to elapsed wall time.
	now := s.now()
	for _, c := range s.conns {
		c.Strength = strength.Score(model.DaysSince(c.LastContact, now), c.Priority)
	}
}

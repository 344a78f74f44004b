package store

import (
	"sort"

	"github.com/calebnewtonusc/webcalhacks25/internal/model"
)

// Get returns the connection by id.
func (s *ConnectionStore) Get(id string) (model.Connection, bool) {
	c, ok := s.byID[id]
	if !ok {
		return model.Connection{}, false
	}
	return *c, true
}

// All returns every connection in insertion order.
func (s *ConnectionStore) All() []model.Connection {
	out := make([]model.Connection, 0, len(s.conns))
	for _, c := range s.conns {
		out = append(out, *c)
	}
	return out
}

// Len reports the number of connections.
func (s *ConnectionStore) Len() int { return len(s.conns) }

// FindByName returns every connection whose name matches the fragment,
// case-insensitively and in both substring directions, in insertion
// order. The first element is the documented first-match pick; callers
// wanting disambiguation get the full candidate list.
func (s *ConnectionStore) FindByName(fragment string) []model.Connection {
	var out []model.Connection
	for _, c := range s.conns {
		if c.NameMatches(fragment) {
			out = append(out, *c)
		}
	}
	return out
}

// ByRelationship returns connections in the given category.
func (s *ConnectionStore) ByRelationship(r model.Relationship) []model.Connection {
	var out []model.Connection
	for _, c := range s.conns {
		if c.Relationship == r {
			out = append(out, *c)
		}
	}
	return out
}

// ByPriority returns connections in the given tier.
func (s *ConnectionStore) ByPriority(p model.Priority) []model.Connection {
	var out []model.Connection
	for _, c := range s.conns {
		if c.Priority == p {
			out = append(out, *c)
		}
	}
	return out
}

// ByStrength returns connections at the given grade.
func (s *ConnectionStore) ByStrength(grade int) []model.Connection {
	var out []model.Connection
	for _, c := range s.conns {
		if c.Strength == grade {
			out = append(out, *c)
		}
	}
	return out
}

// FlatInteraction is an interaction annotated with its owner.
type FlatInteraction struct {
	model.Interaction
	ConnectionID   string `json:"connection_id"`
	ConnectionName string `json:"connection_name"`
}

// AllInteractions returns every interaction across all connections,
// sorted date-descending.
func (s *ConnectionStore) AllInteractions() []FlatInteraction {
	var out []FlatInteraction
	for _, c := range s.conns {
		for _, in := range c.Interactions {
			out = append(out, FlatInteraction{
				Interaction:    in,
				ConnectionID:   c.ID,
				ConnectionName: c.Name,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

// Overdue returns connections whose elapsed days exceed their own
// contact frequency.
func (s *ConnectionStore) Overdue() []model.Connection {
	now := s.now()
	var out []model.Connection
	for _, c := range s.conns {
		if model.DaysSince(c.LastContact, now) > c.ContactFrequency {
			out = append(out, *c)
		}
	}
	return out
}

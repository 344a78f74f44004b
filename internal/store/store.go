// Package store owns the in-memory connection collection for a session.
// All reads and writes funnel through ConnectionStore; every mutation
// publishes to the event bus synchronously before returning.
package store

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/calebnewtonusc/webcalhacks25/internal/bus"
	"github.com/calebnewtonusc/webcalhacks25/internal/model"
	"github.com/calebnewtonusc/webcalhacks25/internal/strength"
)

// Expected-failure sentinels. Wrapped with context at each call site;
// classify with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
)

// ConnectionDraft holds caller-supplied fields for a new connection.
// Strength is always computed, never accepted.
type ConnectionDraft struct {
	Name             string
	Relationship     model.Relationship
	Priority         model.Priority
	LastContact      time.Time // zero means now
	ContactFrequency int       // 0 derives from priority
	Phone            string
	Email            string
	Notes            string
	Tags             []string
}

// ConnectionPatch holds partial updates; nil fields are left unchanged.
type ConnectionPatch struct {
	Name             *string
	Relationship     *model.Relationship
	Priority         *model.Priority
	LastContact      *time.Time
	ContactFrequency *int
	Phone            *string
	Email            *string
	Notes            *string
	Tags             *[]string
}

// InteractionDraft holds caller-supplied fields for a new interaction.
type InteractionDraft struct {
	Type    model.InteractionType
	Date    time.Time // zero means now
	Notes   string
	Quality int
	Mood    string
	Topics  []string
}

// ConnectionStore is the single authoritative collection of connections
// for the current session. Single-writer, no internal locking.
type ConnectionStore struct {
	bus      *bus.Bus
	conns    []*model.Connection // insertion order
	byID     map[string]*model.Connection
	memories []model.Memory
	entropy  *rand.Rand
	now      func() time.Time
}

// New creates an empty store publishing to the given bus.
func New(b *bus.Bus) *ConnectionStore {
	return &ConnectionStore{
		bus:     b,
		byID:    make(map[string]*model.Connection),
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
		now:     time.Now,
	}
}

func (s *ConnectionStore) newID() string {
	return ulid.MustNew(ulid.Timestamp(s.now()), s.entropy).String()
}

// Bus returns the bus this store publishes to.
func (s *ConnectionStore) Bus() *bus.Bus { return s.bus }

// Add validates the draft, assigns an id, computes the initial strength
// and appends the connection, emitting connection_added.
func (s *ConnectionStore) Add(d ConnectionDraft) (model.Connection, error) {
	if strings.TrimSpace(d.Name) == "" {
		return model.Connection{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if d.Relationship == "" {
		d.Relationship = model.RelFriend
	}
	if !model.ValidRelationships[d.Relationship] {
		return model.Connection{}, fmt.Errorf("%w: unknown relationship %q", ErrValidation, d.Relationship)
	}
	if d.Priority == "" {
		d.Priority = model.P3
	}
	if !model.ValidPriorities[d.Priority] {
		return model.Connection{}, fmt.Errorf("%w: unknown priority %q", ErrValidation, d.Priority)
	}

	now := s.now()
	last := d.LastContact
	if last.IsZero() {
		last = now
	}
	freq := d.ContactFrequency
	if freq <= 0 {
		freq = d.Priority.ContactFrequency()
	}

	c := &model.Connection{
		ID:               s.newID(),
		Name:             strings.TrimSpace(d.Name),
		Relationship:     d.Relationship,
		Priority:         d.Priority,
		Strength:         strength.Score(model.DaysSince(last, now), d.Priority),
		LastContact:      last,
		ContactFrequency: freq,
		Phone:            d.Phone,
		Email:            d.Email,
		Notes:            d.Notes,
		Tags:             d.Tags,
		CreatedAt:        now,
	}
	s.conns = append(s.conns, c)
	s.byID[c.ID] = c

	s.bus.Publish(model.Event{Type: model.EventConnectionAdded, ConnectionID: c.ID})
	return *c, nil
}

// Update merges non-nil patch fields into the connection. If last
// contact or priority changed, strength is recomputed and a
// strength_updated event follows the connection_updated one.
func (s *ConnectionStore) Update(id string, p ConnectionPatch) (model.Connection, error) {
	c, ok := s.byID[id]
	if !ok {
		return model.Connection{}, fmt.Errorf("%w: connection %s", ErrNotFound, id)
	}

	if p.Name != nil {
		if strings.TrimSpace(*p.Name) == "" {
			return model.Connection{}, fmt.Errorf("%w: name is required", ErrValidation)
		}
		c.Name = strings.TrimSpace(*p.Name)
	}
	if p.Relationship != nil {
		if !model.ValidRelationships[*p.Relationship] {
			return model.Connection{}, fmt.Errorf("%w: unknown relationship %q", ErrValidation, *p.Relationship)
		}
		c.Relationship = *p.Relationship
	}

	recompute := false
	if p.Priority != nil {
		if !model.ValidPriorities[*p.Priority] {
			return model.Connection{}, fmt.Errorf("%w: unknown priority %q", ErrValidation, *p.Priority)
		}
		// Frequency follows the tier unless it was explicitly overridden.
		if p.ContactFrequency == nil && c.ContactFrequency == c.Priority.ContactFrequency() {
			c.ContactFrequency = p.Priority.ContactFrequency()
		}
		c.Priority = *p.Priority
		recompute = true
	}
	if p.LastContact != nil {
		c.LastContact = *p.LastContact
		recompute = true
	}
	if p.ContactFrequency != nil && *p.ContactFrequency > 0 {
		c.ContactFrequency = *p.ContactFrequency
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Notes != nil {
		c.Notes = *p.Notes
	}
	if p.Tags != nil {
		c.Tags = *p.Tags
	}

	s.bus.Publish(model.Event{Type: model.EventConnectionUpdated, ConnectionID: c.ID})
	if recompute {
		s.refreshStrength(c)
	}
	return *c, nil
}

// Remove deletes the connection along with its interactions and
// memories. Removing an unknown id is a no-op.
func (s *ConnectionStore) Remove(id string) {
	if _, ok := s.byID[id]; !ok {
		return
	}
	delete(s.byID, id)
	for i, c := range s.conns {
		if c.ID == id {
			s.conns = append(s.conns[:i], s.conns[i+1:]...)
			break
		}
	}
	kept := s.memories[:0]
	for _, m := range s.memories {
		if m.ConnectionID != id {
			kept = append(kept, m)
		}
	}
	s.memories = kept

	s.bus.Publish(model.Event{Type: model.EventConnectionDeleted, ConnectionID: id})
}

// LogInteraction appends an interaction to the connection. Last contact
// only ever advances: it becomes the most recent date across all logged
// interactions regardless of logging order. Emits interaction_added,
// then strength_updated.
func (s *ConnectionStore) LogInteraction(connectionID string, d InteractionDraft) (model.Interaction, error) {
	c, ok := s.byID[connectionID]
	if !ok {
		return model.Interaction{}, fmt.Errorf("%w: connection %s", ErrNotFound, connectionID)
	}
	if d.Type == "" {
		d.Type = model.TypeSocial
	}
	if !model.ValidInteractionTypes[d.Type] {
		return model.Interaction{}, fmt.Errorf("%w: unknown interaction type %q", ErrValidation, d.Type)
	}
	date := d.Date
	if date.IsZero() {
		date = s.now()
	}

	in := model.Interaction{
		ID:      s.newID(),
		Type:    d.Type,
		Date:    date,
		Notes:   d.Notes,
		Quality: d.Quality,
		Mood:    d.Mood,
		Topics:  d.Topics,
	}
	c.Interactions = append([]model.Interaction{in}, c.Interactions...)
	if date.After(c.LastContact) {
		c.LastContact = date
	}

	s.bus.Publish(model.Event{Type: model.EventInteractionAdded, ConnectionID: c.ID, Interaction: &in})
	c.Strength = strength.Score(model.DaysSince(c.LastContact, s.now()), c.Priority)
	s.bus.Publish(model.Event{Type: model.EventStrengthUpdated, ConnectionID: c.ID, Strength: c.Strength})
	return in, nil
}

// RefreshStrengths recomputes every connection's strength from elapsed
// time, emitting strength_updated for each grade that changed.
func (s *ConnectionStore) RefreshStrengths() {
	for _, c := range s.conns {
		s.refreshStrength(c)
	}
}

func (s *ConnectionStore) refreshStrength(c *model.Connection) {
	grade := strength.Score(model.DaysSince(c.LastContact, s.now()), c.Priority)
	if grade == c.Strength {
		return
	}
	c.Strength = grade
	s.bus.Publish(model.Event{Type: model.EventStrengthUpdated, ConnectionID: c.ID, Strength: grade})
}

// Package model defines the core relationship data types.
package model

import (
	"sort"
	"strings"
	"time"
)

// Relationship classifies how a connection relates to the user.
type Relationship string

const (
	RelFamily Relationship = "family"
	RelFriend Relationship = "friend"
	RelWork   Relationship = "work"
	RelSchool Relationship = "school"
	RelOther  Relationship = "other"
)

// Priority is the target contact cadence bucket.
type Priority string

const (
	P1 Priority = "P1" // weekly
	P2 Priority = "P2" // bi-weekly
	P3 Priority = "P3" // monthly
)

// ValidRelationships are the allowed relationship categories.
var ValidRelationships = map[Relationship]bool{
	RelFamily: true,
	RelFriend: true,
	RelWork:   true,
	RelSchool: true,
	RelOther:  true,
}

// ValidPriorities are the allowed priority tiers.
var ValidPriorities = map[Priority]bool{
	P1: true,
	P2: true,
	P3: true,
}

// ContactFrequency returns the target contact interval in days for a tier.
func (p Priority) ContactFrequency() int {
	switch p {
	case P1:
		return 7
	case P2:
		return 14
	default:
		return 30
	}
}

// Connection is a tracked person.
type Connection struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	Relationship     Relationship  `json:"relationship"`
	Priority         Priority      `json:"priority"`
	Strength         int           `json:"strength"` // 1..5, derived; never set by callers
	LastContact      time.Time     `json:"last_contact"`
	ContactFrequency int           `json:"contact_frequency"` // days
	Phone            string        `json:"phone,omitempty"`
	Email            string        `json:"email,omitempty"`
	Notes            string        `json:"notes,omitempty"`
	Tags             []string      `json:"tags,omitempty"`
	Interactions     []Interaction `json:"interactions,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
}

// InteractionType classifies a contact event.
type InteractionType string

const (
	TypeCall    InteractionType = "call"
	TypeText    InteractionType = "text"
	TypeEmail   InteractionType = "email"
	TypeMeeting InteractionType = "meeting"
	TypeSocial  InteractionType = "social"
)

// ValidInteractionTypes are the allowed interaction types.
var ValidInteractionTypes = map[InteractionType]bool{
	TypeCall:    true,
	TypeText:    true,
	TypeEmail:   true,
	TypeMeeting: true,
	TypeSocial:  true,
}

// Interaction is a discrete contact event. Immutable after creation.
type Interaction struct {
	ID      string          `json:"id"`
	Type    InteractionType `json:"type"`
	Date    time.Time       `json:"date"`
	Notes   string          `json:"notes,omitempty"`
	Quality int             `json:"quality,omitempty"` // 1-10
	Mood    string          `json:"mood,omitempty"`
	Topics  []string        `json:"topics,omitempty"`
}

// MemoryType classifies a contextual annotation.
type MemoryType string

const (
	MemConversation MemoryType = "conversation"
	MemInterest     MemoryType = "interest"
	MemLifeEvent    MemoryType = "life_event"
	MemPreference   MemoryType = "preference"
	MemGoal         MemoryType = "goal"
	MemPattern      MemoryType = "pattern"
)

// Memory is an append-only annotation attached to a connection.
type Memory struct {
	ID           string     `json:"id"`
	ConnectionID string     `json:"connection_id"`
	Type         MemoryType `json:"type"`
	Content      string     `json:"content"`
	Importance   int        `json:"importance"`
	Tags         []string   `json:"tags,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// DaysSince returns whole elapsed days between t and now, never negative.
func DaysSince(t, now time.Time) int {
	d := int(now.Sub(t).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}

// SortedInteractions returns the interactions sorted most-recent-first.
// Storage order is a convention only; reads must not depend on it.
func (c *Connection) SortedInteractions() []Interaction {
	out := make([]Interaction, len(c.Interactions))
	copy(out, c.Interactions)
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

// NameMatches reports whether the fragment matches the connection name,
// case-insensitively and in both substring directions: "Sar" matches
// "Sarah Chen", and "Sarah Chen Smith" matches a stored "Sarah Chen".
func (c *Connection) NameMatches(fragment string) bool {
	name := strings.ToLower(c.Name)
	frag := strings.ToLower(strings.TrimSpace(fragment))
	if frag == "" {
		return false
	}
	return strings.Contains(name, frag) || strings.Contains(frag, name)
}

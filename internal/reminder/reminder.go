// Package reminder derives reconnection reminders from the current
// connection state. Reminders are never stored; every call synthesizes
// them fresh, so they can't drift out of sync with the web.
package reminder

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/calebnewtonusc/webcalhacks25/internal/model"
)

type Type string

const (
	TypeOverdue      Type = "overdue"
	TypeDueSoon      Type = "due_soon"
	TypeAISuggestion Type = "ai_suggestion"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// dueSoonWindow is how many days ahead of the due date a connection
// starts surfacing as due_soon.
const dueSoonWindow = 2

// Reminder is one synthesized nudge. DueDate is last contact plus the
// connection's contact frequency.
type Reminder struct {
	ID               string    `json:"id"`
	ConnectionID     string    `json:"connection_id"`
	ConnectionName   string    `json:"connection_name"`
	Type             Type      `json:"type"`
	Priority         Priority  `json:"priority"`
	Message          string    `json:"message"`
	Reason           string    `json:"reason"`
	ActionSuggestion string    `json:"action_suggestion,omitempty"`
	DueDate          time.Time `json:"due_date"`
}

var priorityRank = map[Priority]int{PriorityHigh: 3, PriorityMedium: 2, PriorityLow: 1}

// Patterns that pull a name out of a free-text suggestion, e.g.
// "reach out to Sarah" or "Sarah (last seen 2 weeks ago)".
var (
	reSuggestReach = regexp.MustCompile(`(?i)reach out to ([a-zA-Z]+)`)
	reSuggestParen = regexp.MustCompile(`^([a-zA-Z]+)\s*\(`)
)

// Synthesize merges overdue, due-soon and external suggestion signals
// into one reminder list. At most one time-based reminder per
// connection; a suggestion for a connection that already has one folds
// into it instead of duplicating. The result is sorted by priority
// descending, then due date ascending.
func Synthesize(conns []model.Connection, memories []model.Memory, suggestions []string, now time.Time) []Reminder {
	var out []Reminder
	byConn := make(map[string]int) // connection id -> index in out

	for _, c := range conns {
		if c.LastContact.IsZero() || c.ContactFrequency <= 0 {
			continue
		}
		days := model.DaysSince(c.LastContact, now)
		due := c.LastContact.AddDate(0, 0, c.ContactFrequency)

		var r Reminder
		switch {
		case days > c.ContactFrequency:
			r = Reminder{
				Type:     TypeOverdue,
				Priority: overduePriority(c),
				Message:  fmt.Sprintf("Reach out to %s", c.Name),
				Reason:   fmt.Sprintf("Last contact was %d days ago; you aim for every %d.", days, c.ContactFrequency),
			}
		case c.ContactFrequency-days <= dueSoonWindow:
			r = Reminder{
				Type:     TypeDueSoon,
				Priority: PriorityLow,
				Message:  fmt.Sprintf("%s is coming due", c.Name),
				Reason:   fmt.Sprintf("Due in %d day(s).", c.ContactFrequency-days),
			}
		default:
			continue
		}

		r.ID = fmt.Sprintf("%s-%s", r.Type, c.ID)
		r.ConnectionID = c.ID
		r.ConnectionName = c.Name
		r.DueDate = due
		r.ActionSuggestion = suggestionFromMemories(c.ID, memories)
		byConn[c.ID] = len(out)
		out = append(out, r)
	}

	for _, text := range suggestions {
		c, ok := resolveSuggestion(text, conns)
		if !ok {
			continue
		}
		if i, exists := byConn[c.ID]; exists {
			if out[i].ActionSuggestion == "" {
				out[i].ActionSuggestion = text
			}
			continue
		}
		r := Reminder{
			ID:             fmt.Sprintf("%s-%s", TypeAISuggestion, c.ID),
			ConnectionID:   c.ID,
			ConnectionName: c.Name,
			Type:           TypeAISuggestion,
			Priority:       PriorityMedium,
			Message:        fmt.Sprintf("Consider reaching out to %s", c.Name),
			Reason:         text,
			DueDate:        dueDate(c, now),
		}
		byConn[c.ID] = len(out)
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if priorityRank[out[i].Priority] != priorityRank[out[j].Priority] {
			return priorityRank[out[i].Priority] > priorityRank[out[j].Priority]
		}
		return out[i].DueDate.Before(out[j].DueDate)
	})
	return out
}

// overduePriority grades how urgent an overdue connection is. Top-tier
// people and already-weak ties escalate to high.
func overduePriority(c model.Connection) Priority {
	if c.Priority == model.P1 || c.Strength <= 2 {
		return PriorityHigh
	}
	return PriorityMedium
}

func dueDate(c model.Connection, now time.Time) time.Time {
	if c.LastContact.IsZero() || c.ContactFrequency <= 0 {
		return now
	}
	return c.LastContact.AddDate(0, 0, c.ContactFrequency)
}

// suggestionFromMemories turns the most recent life event or interest
// into a conversation opener.
func suggestionFromMemories(connectionID string, memories []model.Memory) string {
	var best *model.Memory
	for i := range memories {
		m := &memories[i]
		if m.ConnectionID != connectionID {
			continue
		}
		if m.Type != model.MemLifeEvent && m.Type != model.MemInterest {
			continue
		}
		if best == nil || m.CreatedAt.After(best.CreatedAt) {
			best = m
		}
	}
	if best == nil {
		return ""
	}
	return fmt.Sprintf("Ask about: %s", best.Content)
}

// resolveSuggestion maps a free-text suggestion back to a connection.
// Unresolvable suggestions are dropped rather than shown unattributed.
func resolveSuggestion(text string, conns []model.Connection) (model.Connection, bool) {
	var name string
	if m := reSuggestReach.FindStringSubmatch(text); m != nil {
		name = m[1]
	} else if m := reSuggestParen.FindStringSubmatch(strings.TrimSpace(text)); m != nil {
		name = m[1]
	}
	if name == "" {
		return model.Connection{}, false
	}
	for _, c := range conns {
		if c.NameMatches(name) {
			return c, true
		}
	}
	return model.Connection{}, false
}

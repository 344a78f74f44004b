// Package command turns parsed intents into store operations and a
// uniform outcome the CLI can render.
package command

import (
	"fmt"
	"strings"
	"time"

	"github.com/calebnewtonusc/webcalhacks25/internal/intent"
	"github.com/calebnewtonusc/webcalhacks25/internal/model"
	"github.com/calebnewtonusc/webcalhacks25/internal/store"
)

// Status classifies an outcome for callers that branch on result shape
// rather than parsing the message.
type Status string

const (
	StatusOK           Status = "ok"
	StatusNotFound     Status = "not_found"
	StatusInvalid      Status = "invalid"
	StatusUnrecognized Status = "unrecognized"
)

// Outcome is the result of executing one intent. Message is always
// set; the slices and Stats are populated per intent kind. Candidates
// carries every name match when a fragment resolved, so callers can
// surface ambiguity even though the first match was acted on.
type Outcome struct {
	Status      Status              `json:"status"`
	Message     string              `json:"message"`
	Candidates  []model.Connection  `json:"candidates,omitempty"`
	Connections []model.Connection  `json:"connections,omitempty"`
	Stats       *store.NetworkStats `json:"stats,omitempty"`
}

// Executor resolves intents against a single store.
type Executor struct {
	store *store.ConnectionStore
	now   func() time.Time
}

func NewExecutor(s *store.ConnectionStore) *Executor {
	return &Executor{store: s, now: time.Now}
}

// Execute dispatches on the intent kind. Mutating intents resolve the
// name fragment to the first match in insertion order; read intents
// never modify the store.
func (e *Executor) Execute(in intent.Intent) Outcome {
	switch in.Kind {
	case intent.KindAddConnection:
		return e.addConnection(in)
	case intent.KindLogInteraction:
		return e.logInteraction(in)
	case intent.KindUpdatePriority:
		return e.updatePriority(in)
	case intent.KindMoveCategory:
		return e.moveCategory(in)
	case intent.KindQueryOverdue:
		return e.queryOverdue()
	case intent.KindQueryByFilter:
		return e.queryByFilter(in)
	case intent.KindDescribeConnection:
		return e.describeConnection(in)
	case intent.KindQueryStats:
		return e.queryStats()
	default:
		return Outcome{
			Status:  StatusUnrecognized,
			Message: helpText(in.Text),
		}
	}
}

func (e *Executor) addConnection(in intent.Intent) Outcome {
	c, err := e.store.Add(store.ConnectionDraft{
		Name:         in.Name,
		Relationship: in.Relationship,
		Priority:     in.Priority,
	})
	if err != nil {
		return Outcome{Status: StatusInvalid, Message: fmt.Sprintf("could not add connection: %v", err)}
	}

	msg := fmt.Sprintf("Added %s to your web (%s, %s).", c.Name, c.Relationship, c.Priority)
	if in.HadInteraction {
		e.store.LogInteraction(c.ID, store.InteractionDraft{
			Type: in.InteractionType,
			Date: in.Date,
		})
		c, _ = e.store.Get(c.ID)
		msg = fmt.Sprintf("Added %s to your web (%s, %s) and logged your interaction.", c.Name, c.Relationship, c.Priority)
	}
	return Outcome{Status: StatusOK, Message: msg, Connections: []model.Connection{c}}
}

func (e *Executor) logInteraction(in intent.Intent) Outcome {
	c, candidates, out, ok := e.resolve(in.Name)
	if !ok {
		return out
	}
	if _, err := e.store.LogInteraction(c.ID, store.InteractionDraft{
		Type: in.InteractionType,
		Date: in.Date,
	}); err != nil {
		return Outcome{Status: StatusInvalid, Message: fmt.Sprintf("could not log interaction: %v", err)}
	}
	c, _ = e.store.Get(c.ID)
	return Outcome{
		Status:      StatusOK,
		Message:     fmt.Sprintf("Logged a %s with %s. Strength is now %d/5.", in.InteractionType, c.Name, c.Strength),
		Candidates:  candidates,
		Connections: []model.Connection{c},
	}
}

func (e *Executor) updatePriority(in intent.Intent) Outcome {
	c, candidates, out, ok := e.resolve(in.Name)
	if !ok {
		return out
	}
	p := in.Priority
	updated, err := e.store.Update(c.ID, store.ConnectionPatch{Priority: &p})
	if err != nil {
		return Outcome{Status: StatusInvalid, Message: fmt.Sprintf("could not update priority: %v", err)}
	}
	return Outcome{
		Status:      StatusOK,
		Message:     fmt.Sprintf("Moved %s to %s. Expecting contact every %d days.", updated.Name, updated.Priority, updated.ContactFrequency),
		Candidates:  candidates,
		Connections: []model.Connection{updated},
	}
}

func (e *Executor) moveCategory(in intent.Intent) Outcome {
	c, candidates, out, ok := e.resolve(in.Name)
	if !ok {
		return out
	}
	rel := in.Category
	updated, err := e.store.Update(c.ID, store.ConnectionPatch{Relationship: &rel})
	if err != nil {
		return Outcome{Status: StatusInvalid, Message: fmt.Sprintf("could not move connection: %v", err)}
	}
	return Outcome{
		Status:      StatusOK,
		Message:     fmt.Sprintf("Moved %s to the %s group.", updated.Name, updated.Relationship),
		Candidates:  candidates,
		Connections: []model.Connection{updated},
	}
}

func (e *Executor) queryOverdue() Outcome {
	overdue := e.store.Overdue()
	if len(overdue) == 0 {
		return Outcome{Status: StatusOK, Message: "You're all caught up. Nobody is overdue."}
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d connection(s) are overdue:\n", len(overdue))
	for _, c := range overdue {
		fmt.Fprintf(&b, "  %s (%s, strength %d/5)\n", c.Name, c.Priority, c.Strength)
	}
	return Outcome{Status: StatusOK, Message: strings.TrimRight(b.String(), "\n"), Connections: overdue}
}

func (e *Executor) queryByFilter(in intent.Intent) Outcome {
	matched := filterConnections(e.store.All(), in.Filter)
	if len(matched) == 0 {
		return Outcome{Status: StatusOK, Message: "No connections match that filter."}
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d connection(s):\n", len(matched))
	for _, c := range matched {
		fmt.Fprintf(&b, "  %s (%s, %s, strength %d/5)\n", c.Name, c.Relationship, c.Priority, c.Strength)
	}
	return Outcome{Status: StatusOK, Message: strings.TrimRight(b.String(), "\n"), Connections: matched}
}

func (e *Executor) describeConnection(in intent.Intent) Outcome {
	c, candidates, out, ok := e.resolve(in.Name)
	if !ok {
		return out
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s, %s, strength %d/5.", c.Name, c.Relationship, c.Priority, c.Strength)
	if !c.LastContact.IsZero() {
		fmt.Fprintf(&b, " Last contact %d day(s) ago.", model.DaysSince(c.LastContact, e.now()))
	}
	if n := len(c.Interactions); n > 0 {
		fmt.Fprintf(&b, " %d interaction(s) on record.", n)
	}
	return Outcome{
		Status:      StatusOK,
		Message:     b.String(),
		Candidates:  candidates,
		Connections: []model.Connection{c},
	}
}

func (e *Executor) queryStats() Outcome {
	stats := e.store.Stats()
	return Outcome{
		Status:  StatusOK,
		Message: fmt.Sprintf("%d connections, average strength %.1f. %d strong, %d need attention.", stats.Total, stats.AverageStrength, stats.Strong, stats.NeedsAttention),
		Stats:   &stats,
	}
}

// resolve maps a name fragment to a connection. First match in
// insertion order wins; the full candidate list comes back so the
// caller can show the ambiguity. When ok is false the outcome is
// final.
func (e *Executor) resolve(fragment string) (model.Connection, []model.Connection, Outcome, bool) {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return model.Connection{}, nil, Outcome{Status: StatusInvalid, Message: "I couldn't pick out a name from that."}, false
	}
	matches := e.store.FindByName(fragment)
	if len(matches) == 0 {
		return model.Connection{}, nil, Outcome{
			Status:  StatusNotFound,
			Message: fmt.Sprintf("No connection matching %q. Try adding them first.", fragment),
		}, false
	}
	return matches[0], matches, Outcome{}, true
}

func filterConnections(conns []model.Connection, f intent.Filter) []model.Connection {
	var out []model.Connection
	for _, c := range conns {
		if f.Relationship != "" && c.Relationship != f.Relationship {
			continue
		}
		if f.Priority != "" && c.Priority != f.Priority {
			continue
		}
		if f.MaxStrength > 0 && c.Strength > f.MaxStrength {
			continue
		}
		out = append(out, c)
	}
	return out
}

func helpText(text string) string {
	var b strings.Builder
	if strings.TrimSpace(text) != "" {
		fmt.Fprintf(&b, "I didn't understand %q.\n", text)
	}
	b.WriteString("Try things like:\n")
	b.WriteString("  add my friend Sarah to my web\n")
	b.WriteString("  I hung out with Sarah yesterday\n")
	b.WriteString("  move Marcus to P1\n")
	b.WriteString("  who haven't I talked to in a while?\n")
	b.WriteString("  show me my work connections\n")
	b.WriteString("  tell me about Sarah")
	return b.String()
}

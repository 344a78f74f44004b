// Package assistant is the boundary to an external AI collaborator.
// Everything that crosses it goes through ConnectionSummary rows, so
// interaction notes and memories never leave the process.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/calebnewtonusc/webcalhacks25/internal/model"
)

// ErrExternalService wraps any failure of the remote collaborator so
// callers can fall back without inspecting provider errors.
var ErrExternalService = errors.New("external assistant unavailable")

// Message is one turn of prior conversation passed back for context.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ConnectionSummary is the only view of a connection the collaborator
// sees. Notes and memories are deliberately absent.
type ConnectionSummary struct {
	Name             string `json:"name"`
	Relationship     string `json:"relationship"`
	Priority         string `json:"priority"`
	Strength         int    `json:"strength"`
	DaysSinceContact int    `json:"days_since_contact"`
	InteractionCount int    `json:"interaction_count"`
}

// Asker answers a free-form question grounded in the network summary.
type Asker interface {
	Ask(ctx context.Context, userMessage string, network []ConnectionSummary, history []Message) (string, error)
}

// Summarize projects connections into collaborator-safe rows.
func Summarize(conns []model.Connection, now time.Time) []ConnectionSummary {
	out := make([]ConnectionSummary, 0, len(conns))
	for _, c := range conns {
		out = append(out, ConnectionSummary{
			Name:             c.Name,
			Relationship:     string(c.Relationship),
			Priority:         string(c.Priority),
			Strength:         c.Strength,
			DaysSinceContact: model.DaysSince(c.LastContact, now),
			InteractionCount: len(c.Interactions),
		})
	}
	return out
}

// systemPrompt grounds the collaborator in the current network state.
func systemPrompt(network []ConnectionSummary) string {
	var b strings.Builder
	b.WriteString("You are a relationship assistant. You help the user maintain their personal network.\n")
	b.WriteString("Be brief, warm and concrete. Suggest specific people to reach out to when asked.\n")
	if len(network) == 0 {
		b.WriteString("The user's network is currently empty.")
		return b.String()
	}
	b.WriteString("Current network:\n")
	for _, c := range network {
		fmt.Fprintf(&b, "- %s (%s, %s): strength %d/5, last contact %d day(s) ago, %d interaction(s)\n",
			c.Name, c.Relationship, c.Priority, c.Strength, c.DaysSinceContact, c.InteractionCount)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Package intent maps free-text utterances to structured intents.
//
// Parsing is deterministic and side-effect-free: the parser never
// touches the store, and an utterance it cannot place comes back as
// KindUnrecognized rather than an error.
package intent

import (
	"time"

	"github.com/calebnewtonusc/webcalhacks25/internal/model"
)

// Kind tags the intent variant.
type Kind string

const (
	KindAddConnection      Kind = "add_connection"
	KindLogInteraction     Kind = "log_interaction"
	KindUpdatePriority     Kind = "update_priority"
	KindMoveCategory       Kind = "move_category"
	KindQueryOverdue       Kind = "query_overdue"
	KindQueryByFilter      Kind = "query_by_filter"
	KindDescribeConnection Kind = "describe_connection"
	KindQueryStats         Kind = "query_stats"
	KindUnrecognized       Kind = "unrecognized"
)

// Filter narrows a query_by_filter intent. Zero values mean "not set".
type Filter struct {
	Relationship model.Relationship `json:"relationship,omitempty"`
	Priority     model.Priority     `json:"priority,omitempty"`
	MaxStrength  int                `json:"max_strength,omitempty"` // e.g. 2 for "low strength"
}

// Intent is the parsed form of one utterance. Only the fields the text
// supports are populated; Text always carries the original utterance.
// Intents are transient: produced and consumed within a single request.
type Intent struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`

	Name string `json:"name,omitempty"` // extracted name fragment

	// Log-interaction slots.
	Date            time.Time             `json:"date,omitempty"`
	InteractionType model.InteractionType `json:"interaction_type,omitempty"`

	// Add-connection slots.
	Relationship   model.Relationship `json:"relationship,omitempty"`
	HadInteraction bool               `json:"had_interaction,omitempty"`

	// Priority slot (update_priority and add_connection).
	Priority model.Priority `json:"priority,omitempty"`

	// Category slot (move_category).
	Category model.Relationship `json:"category,omitempty"`

	Filter Filter `json:"filter,omitempty"`
}

package model

// EventType tags a state-change notification.
type EventType string

const (
	EventConnectionAdded   EventType = "connection_added"
	EventConnectionUpdated EventType = "connection_updated"
	EventConnectionDeleted EventType = "connection_deleted"
	EventInteractionAdded  EventType = "interaction_added"
	EventStrengthUpdated   EventType = "strength_updated"
)

// Event is the payload published on the bus after a store mutation.
// It carries identifiers and the minimal delta, never a copy of the store.
type Event struct {
	Type         EventType    `json:"type"`
	ConnectionID string       `json:"connection_id"`
	Interaction  *Interaction `json:"interaction,omitempty"` // set for interaction_added
	Strength     int          `json:"strength,omitempty"`    // set for strength_updated
}

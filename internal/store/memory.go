package store

import (
	"fmt"
	"sort"

	"github.com/calebnewtonusc/webcalhacks25/internal/model"
)

// MemoryDraft holds caller-supplied fields for a new memory.
type MemoryDraft struct {
	ConnectionID string
	Type         model.MemoryType
	Content      string
	Importance   int
	Tags         []string
}

// AddMemory appends an annotation for a connection. Memories are
// append-only; there is no update or single-delete path.
func (s *ConnectionStore) AddMemory(d MemoryDraft) (model.Memory, error) {
	if _, ok := s.byID[d.ConnectionID]; !ok {
		return model.Memory{}, fmt.Errorf("%w: connection %s", ErrNotFound, d.ConnectionID)
	}
	if d.Content == "" {
		return model.Memory{}, fmt.Errorf("%w: memory content is required", ErrValidation)
	}
	if d.Type == "" {
		d.Type = model.MemConversation
	}
	m := model.Memory{
		ID:           s.newID(),
		ConnectionID: d.ConnectionID,
		Type:         d.Type,
		Content:      d.Content,
		Importance:   d.Importance,
		Tags:         d.Tags,
		CreatedAt:    s.now(),
	}
	s.memories = append(s.memories, m)
	return m, nil
}

// Memories returns all memories, newest first.
func (s *ConnectionStore) Memories() []model.Memory {
	out := make([]model.Memory, len(s.memories))
	copy(out, s.memories)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// MemoriesFor returns the memories attached to one connection, newest first.
func (s *ConnectionStore) MemoriesFor(connectionID string) []model.Memory {
	var out []model.Memory
	for _, m := range s.memories {
		if m.ConnectionID == connectionID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// EnableMemoryCapture subscribes the store to its own bus so that any
// interaction logged with notes leaves a conversation memory behind,
// giving later reminders something to reference. Returns the
// unsubscribe function.
func (s *ConnectionStore) EnableMemoryCapture() func() {
	return s.bus.Subscribe(func(e model.Event) {
		if e.Type != model.EventInteractionAdded || e.Interaction == nil || e.Interaction.Notes == "" {
			return
		}
		s.AddMemory(MemoryDraft{
			ConnectionID: e.ConnectionID,
			Type:         model.MemConversation,
			Content:      e.Interaction.Notes,
			Importance:   7,
			Tags:         []string{string(e.Interaction.Type), "auto-logged"},
		})
	})
}

package assistant

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/calebnewtonusc/webcalhacks25/internal/model"
)

// Fallback is a deterministic Asker used when no external collaborator
// is configured. It composes an answer from the network summary alone.
type Fallback struct{}

func (Fallback) Ask(_ context.Context, _ string, network []ConnectionSummary, _ []Message) (string, error) {
	if len(network) == 0 {
		return "Your web is empty. Add a few people and I'll help you keep in touch.", nil
	}

	overdue := make([]ConnectionSummary, 0, len(network))
	for _, c := range network {
		freq := model.Priority(c.Priority).ContactFrequency()
		if freq > 0 && c.DaysSinceContact > freq {
			overdue = append(overdue, c)
		}
	}
	if len(overdue) == 0 {
		return fmt.Sprintf("You're keeping up with all %d connections. Nothing urgent today.", len(network)), nil
	}

	sort.SliceStable(overdue, func(i, j int) bool {
		return overdue[i].DaysSinceContact > overdue[j].DaysSinceContact
	})
	var b strings.Builder
	b.WriteString("A few people could use a ping:\n")
	for i, c := range overdue {
		if i == 3 {
			break
		}
		fmt.Fprintf(&b, "- Reach out to %s, it's been %d days since you talked.\n", c.Name, c.DaysSinceContact)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

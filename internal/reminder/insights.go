package reminder

import (
	"fmt"
	"time"

	"github.com/calebnewtonusc/webcalhacks25/internal/model"
)

// Insights produces short daily summary lines about the state of the
// web. Empty input yields a single onboarding line.
func Insights(conns []model.Connection, now time.Time) []string {
	if len(conns) == 0 {
		return []string{"Your web is empty. Add a few people to get started."}
	}

	var overdueP1, weak, strong int
	for _, c := range conns {
		days := model.DaysSince(c.LastContact, now)
		if c.Priority == model.P1 && c.ContactFrequency > 0 && days > c.ContactFrequency {
			overdueP1++
		}
		if c.Strength <= 2 {
			weak++
		}
		if c.Strength >= 4 {
			strong++
		}
	}

	var out []string
	if overdueP1 > 0 {
		out = append(out, fmt.Sprintf("%d top-priority connection(s) are overdue for contact.", overdueP1))
	}
	if weak > 0 {
		out = append(out, fmt.Sprintf("%d connection(s) have low strength and could use attention.", weak))
	}
	if strong > 0 {
		out = append(out, fmt.Sprintf("%d connection(s) are going strong. Keep it up.", strong))
	}
	if len(out) == 0 {
		out = append(out, "Everything looks healthy today.")
	}
	return out
}

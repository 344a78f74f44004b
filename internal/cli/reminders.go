package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/calebnewtonusc/webcalhacks25/internal/model"
	"github.com/calebnewtonusc/webcalhacks25/internal/reminder"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "reminders",
		Short: "Who to reach out to, ranked",
		Run:   runReminders,
	}

	cmd.Flags().String("ai-suggestions", "", "JSON array of suggestion strings to merge in")
	cmd.Flags().Bool("insights", false, "Also print daily insight lines")

	RootCmd.AddCommand(cmd)
}

func runReminders(cmd *cobra.Command, args []string) {
	suggestionsJSON, _ := cmd.Flags().GetString("ai-suggestions")
	withInsights, _ := cmd.Flags().GetBool("insights")

	var suggestions []string
	if suggestionsJSON != "" {
		if err := json.Unmarshal([]byte(suggestionsJSON), &suggestions); err != nil {
			exitErr("parse --ai-suggestions", err)
		}
	}

	sess, err := openSession(cmd.Context())
	if err != nil {
		exitErr("open session", err)
	}
	defer sess.close()

	now := time.Now()
	conns := sess.store.All()
	rs := reminder.Synthesize(conns, sess.store.Memories(), suggestions, now)

	if formatFlag == "json" {
		printJSON(struct {
			Reminders []reminder.Reminder `json:"reminders"`
			Insights  []string            `json:"insights,omitempty"`
		}{rs, insightsIf(withInsights, conns, now)})
		return
	}

	if withInsights {
		for _, line := range reminder.Insights(conns, now) {
			fmt.Println(line)
		}
		fmt.Println()
	}
	if len(rs) == 0 {
		fmt.Println("No reminders. You're all caught up.")
		return
	}
	for _, r := range rs {
		fmt.Printf("[%s] %s\n", r.Priority, r.Message)
		fmt.Printf("    %s\n", r.Reason)
		if r.ActionSuggestion != "" {
			fmt.Printf("    %s\n", r.ActionSuggestion)
		}
	}
}

func insightsIf(enabled bool, conns []model.Connection, now time.Time) []string {
	if !enabled {
		return nil
	}
	return reminder.Insights(conns, now)
}

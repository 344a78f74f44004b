package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/calebnewtonusc/webcalhacks25/internal/model"
	"github.com/calebnewtonusc/webcalhacks25/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "log [name]",
		Short: "Log an interaction with a connection",
		Args:  cobra.MinimumNArgs(1),
		Run:   runLog,
	}

	cmd.Flags().StringP("type", "t", "social", "Interaction type: call, text, email, meeting, social")
	cmd.Flags().String("date", "", "When it happened: RFC3339, 'today' or 'yesterday' (default today)")
	cmd.Flags().String("notes", "", "What you talked about")
	cmd.Flags().IntP("quality", "q", 0, "Interaction quality 1-10")

	RootCmd.AddCommand(cmd)
}

func runLog(cmd *cobra.Command, args []string) {
	typeStr, _ := cmd.Flags().GetString("type")
	dateStr, _ := cmd.Flags().GetString("date")
	notes, _ := cmd.Flags().GetString("notes")
	quality, _ := cmd.Flags().GetInt("quality")

	date, err := parseDateFlag(dateStr)
	if err != nil {
		exitErr("log", err)
	}

	sess, err := openSession(cmd.Context())
	if err != nil {
		exitErr("open session", err)
	}
	defer sess.close()

	c, ok := resolveConnection(sess.store, strings.Join(args, " "))
	if !ok {
		return
	}

	in, err := sess.store.LogInteraction(c.ID, store.InteractionDraft{
		Type:    model.InteractionType(strings.ToLower(typeStr)),
		Date:    date,
		Notes:   notes,
		Quality: quality,
	})
	if err != nil {
		exitErr("log", err)
	}
	if err := sess.save(cmd.Context()); err != nil {
		exitErr("save", err)
	}

	fresh, _ := sess.store.Get(c.ID)
	if formatFlag == "json" {
		printJSON(in)
		return
	}
	fmt.Printf("Logged a %s with %s. Strength is now %d/5.\n", in.Type, fresh.Name, fresh.Strength)
}

// resolveConnection finds a connection by name fragment, printing the
// miss or the ambiguity itself. The first match wins.
func resolveConnection(s *store.ConnectionStore, fragment string) (model.Connection, bool) {
	matches := s.FindByName(fragment)
	if len(matches) == 0 {
		fmt.Printf("No connection matching %q. Try 'weave add %s' first.\n", fragment, fragment)
		return model.Connection{}, false
	}
	if len(matches) > 1 {
		var names []string
		for _, m := range matches {
			names = append(names, m.Name)
		}
		fmt.Printf("Multiple matches (%s); using %s.\n", strings.Join(names, ", "), matches[0].Name)
	}
	return matches[0], true
}

func parseDateFlag(s string) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today", "now":
		return time.Now(), nil
	case "yesterday":
		return time.Now().AddDate(0, 0, -1), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	t, err2 := time.Parse("2006-01-02", s)
	if err2 == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unparseable date %q: %v", s, err)
}

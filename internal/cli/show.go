package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/calebnewtonusc/webcalhacks25/internal/model"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "show [name]",
		Short: "Show a connection with interactions and memories",
		Args:  cobra.MinimumNArgs(1),
		Run:   runShow,
	}
	RootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) {
	sess, err := openSession(cmd.Context())
	if err != nil {
		exitErr("open session", err)
	}
	defer sess.close()

	c, ok := resolveConnection(sess.store, strings.Join(args, " "))
	if !ok {
		return
	}
	memories := sess.store.MemoriesFor(c.ID)

	if formatFlag == "json" {
		printJSON(struct {
			Connection model.Connection `json:"connection"`
			Memories   []model.Memory   `json:"memories,omitempty"`
		}{c, memories})
		return
	}

	now := time.Now()
	fmt.Printf("%s  (%s, %s)\n", c.Name, c.Relationship, c.Priority)
	fmt.Printf("  strength %d/5, last contact %d day(s) ago, expecting contact every %d days\n",
		c.Strength, model.DaysSince(c.LastContact, now), c.ContactFrequency)
	if c.Phone != "" {
		fmt.Printf("  phone: %s\n", c.Phone)
	}
	if c.Email != "" {
		fmt.Printf("  email: %s\n", c.Email)
	}
	if len(c.Tags) > 0 {
		fmt.Printf("  tags: %s\n", strings.Join(c.Tags, ", "))
	}
	if c.Notes != "" {
		fmt.Printf("  notes: %s\n", c.Notes)
	}

	if ins := c.SortedInteractions(); len(ins) > 0 {
		fmt.Printf("\nInteractions (%d):\n", len(ins))
		for _, in := range ins {
			line := fmt.Sprintf("  %s  %s", in.Date.Format("2006-01-02"), in.Type)
			if in.Quality > 0 {
				line += fmt.Sprintf(" (quality %d/10)", in.Quality)
			}
			if in.Notes != "" {
				line += "  " + in.Notes
			}
			fmt.Println(line)
		}
	}
	if len(memories) > 0 {
		fmt.Printf("\nMemories (%d):\n", len(memories))
		for _, m := range memories {
			fmt.Printf("  [%s] %s\n", m.Type, m.Content)
		}
	}
}

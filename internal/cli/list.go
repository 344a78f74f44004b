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
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List connections",
		Run:     runList,
	}

	cmd.Flags().StringP("relationship", "r", "", "Filter by relationship")
	cmd.Flags().StringP("priority", "p", "", "Filter by priority (P1, P2, P3)")
	cmd.Flags().IntP("strength", "s", 0, "Filter by exact strength grade 1-5")

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	relationship, _ := cmd.Flags().GetString("relationship")
	priority, _ := cmd.Flags().GetString("priority")
	grade, _ := cmd.Flags().GetInt("strength")

	sess, err := openSession(cmd.Context())
	if err != nil {
		exitErr("open session", err)
	}
	defer sess.close()

	conns := sess.store.All()
	switch {
	case relationship != "":
		conns = sess.store.ByRelationship(model.Relationship(strings.ToLower(relationship)))
	case priority != "":
		conns = sess.store.ByPriority(model.Priority(strings.ToUpper(priority)))
	case grade != 0:
		conns = sess.store.ByStrength(grade)
	}

	if formatFlag == "json" {
		printJSON(conns)
		return
	}
	if len(conns) == 0 {
		fmt.Println("No connections.")
		return
	}
	now := time.Now()
	for _, c := range conns {
		fmt.Printf("%-24s %-8s %-3s strength %d/5, last contact %d day(s) ago\n",
			c.Name, c.Relationship, c.Priority, c.Strength, model.DaysSince(c.LastContact, now))
	}
}

package cli

import (
	"fmt"
	"strings"

	"github.com/calebnewtonusc/webcalhacks25/internal/model"
	"github.com/calebnewtonusc/webcalhacks25/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a connection to your web",
		Args:  cobra.MinimumNArgs(1),
		Run:   runAdd,
	}

	cmd.Flags().StringP("relationship", "r", "friend", "Relationship: family, friend, work, school, other")
	cmd.Flags().StringP("priority", "p", "P3", "Priority: P1 (weekly), P2 (biweekly), P3 (monthly)")
	cmd.Flags().String("phone", "", "Phone number")
	cmd.Flags().String("email", "", "Email address")
	cmd.Flags().String("notes", "", "Free-form notes")
	cmd.Flags().StringP("tags", "t", "", "Comma-separated tags")

	RootCmd.AddCommand(cmd)
}

func runAdd(cmd *cobra.Command, args []string) {
	relationship, _ := cmd.Flags().GetString("relationship")
	priority, _ := cmd.Flags().GetString("priority")
	phone, _ := cmd.Flags().GetString("phone")
	email, _ := cmd.Flags().GetString("email")
	notes, _ := cmd.Flags().GetString("notes")
	tagsStr, _ := cmd.Flags().GetString("tags")

	sess, err := openSession(cmd.Context())
	if err != nil {
		exitErr("open session", err)
	}
	defer sess.close()

	c, err := sess.store.Add(store.ConnectionDraft{
		Name:         strings.Join(args, " "),
		Relationship: model.Relationship(strings.ToLower(relationship)),
		Priority:     model.Priority(strings.ToUpper(priority)),
		Phone:        phone,
		Email:        email,
		Notes:        notes,
		Tags:         splitTags(tagsStr),
	})
	if err != nil {
		exitErr("add", err)
	}
	if err := sess.save(cmd.Context()); err != nil {
		exitErr("save", err)
	}

	if formatFlag == "json" {
		printJSON(c)
		return
	}
	fmt.Printf("Added %s (%s, %s). Expecting contact every %d days.\n", c.Name, c.Relationship, c.Priority, c.ContactFrequency)
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(s, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rm [name-or-id]",
		Short: "Remove a connection and its history",
		Args:  cobra.MinimumNArgs(1),
		Run:   runRm,
	}
	RootCmd.AddCommand(cmd)
}

func runRm(cmd *cobra.Command, args []string) {
	target := strings.Join(args, " ")

	sess, err := openSession(cmd.Context())
	if err != nil {
		exitErr("open session", err)
	}
	defer sess.close()

	id := target
	name := target
	if _, ok := sess.store.Get(target); !ok {
		c, found := resolveConnection(sess.store, target)
		if !found {
			return
		}
		id, name = c.ID, c.Name
	}

	sess.store.Remove(id)
	if err := sess.save(cmd.Context()); err != nil {
		exitErr("save", err)
	}
	fmt.Printf("Removed %s.\n", name)
}

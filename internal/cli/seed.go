package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/calebnewtonusc/webcalhacks25/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the web from an onboarding JSON list",
		Long:  "Read a JSON array of people ({name, priority?, relationship?, recent_interaction?}) from a file or stdin and add them in one pass.",
		Run:   runSeed,
	}
	cmd.Flags().String("file", "", "Path to the JSON file (default: stdin)")
	RootCmd.AddCommand(cmd)
}

func runSeed(cmd *cobra.Command, args []string) {
	file, _ := cmd.Flags().GetString("file")

	var r io.Reader = os.Stdin
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			exitErr("open seed file", err)
		}
		defer f.Close()
		r = f
	}

	var people []store.SeedPerson
	if err := json.NewDecoder(r).Decode(&people); err != nil {
		exitErr("parse seed JSON", err)
	}

	sess, err := openSession(cmd.Context())
	if err != nil {
		exitErr("open session", err)
	}
	defer sess.close()

	n := sess.store.Seed(people)
	if err := sess.save(cmd.Context()); err != nil {
		exitErr("save", err)
	}
	fmt.Printf("Seeded %d connection(s).\n", n)
}

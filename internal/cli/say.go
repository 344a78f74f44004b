package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/calebnewtonusc/webcalhacks25/internal/assistant"
	"github.com/calebnewtonusc/webcalhacks25/internal/command"
	"github.com/calebnewtonusc/webcalhacks25/internal/intent"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "say [utterance]",
		Short: "Talk to your web in plain language",
		Long:  "Parse a natural-language utterance and run it: \"I hung out with Sarah yesterday\", \"move Marcus to P1\", \"who haven't I talked to in a while?\".",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSay,
	}
	cmd.Flags().Bool("no-ai", false, "Skip the AI reply even if OPENAI_API_KEY is set")
	RootCmd.AddCommand(cmd)
}

func runSay(cmd *cobra.Command, args []string) {
	noAI, _ := cmd.Flags().GetBool("no-ai")
	utterance := strings.Join(args, " ")

	sess, err := openSession(cmd.Context())
	if err != nil {
		exitErr("open session", err)
	}
	defer sess.close()

	in := intent.NewParser().Parse(utterance)
	out := command.NewExecutor(sess.store).Execute(in)

	if isMutation(in.Kind) && out.Status == command.StatusOK {
		if err := sess.save(cmd.Context()); err != nil {
			exitErr("save", err)
		}
	}

	if formatFlag == "json" {
		printJSON(out)
		return
	}
	fmt.Println(out.Message)
	if len(out.Candidates) > 1 {
		var names []string
		for _, c := range out.Candidates {
			names = append(names, c.Name)
		}
		fmt.Printf("(also matched: %s)\n", strings.Join(names[1:], ", "))
	}

	// A narrative reply on top of the deterministic outcome, when a
	// collaborator is configured. Failures degrade silently to the
	// outcome text above.
	if noAI || os.Getenv("OPENAI_API_KEY") == "" {
		return
	}
	asker, err := assistant.NewOpenAIAsker(slog.Default())
	if err != nil {
		return
	}
	network := assistant.Summarize(sess.store.All(), time.Now())
	reply, err := asker.Ask(cmd.Context(), utterance, network, nil)
	if err != nil {
		slog.Warn("assistant reply unavailable", "error", err)
		return
	}
	fmt.Println()
	fmt.Println(reply)
}

func isMutation(k intent.Kind) bool {
	switch k {
	case intent.KindAddConnection, intent.KindLogInteraction, intent.KindUpdatePriority, intent.KindMoveCategory:
		return true
	}
	return false
}

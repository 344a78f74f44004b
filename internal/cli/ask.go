package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/calebnewtonusc/webcalhacks25/internal/assistant"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask the assistant about your web",
		Long:  "Ask a free-form question grounded in a summary of your network. Uses the OpenAI API when OPENAI_API_KEY is set, otherwise answers deterministically from the summary.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runAsk,
	}
	RootCmd.AddCommand(cmd)
}

func runAsk(cmd *cobra.Command, args []string) {
	question := strings.Join(args, " ")

	sess, err := openSession(cmd.Context())
	if err != nil {
		exitErr("open session", err)
	}
	defer sess.close()

	network := assistant.Summarize(sess.store.All(), time.Now())

	var asker assistant.Asker = assistant.Fallback{}
	if os.Getenv("OPENAI_API_KEY") != "" {
		if a, aerr := assistant.NewOpenAIAsker(slog.Default()); aerr == nil {
			asker = a
		}
	}

	reply, err := asker.Ask(cmd.Context(), question, network, nil)
	if err != nil {
		// Remote failure degrades to the deterministic path.
		slog.Warn("assistant unavailable, using local summary", "error", err)
		reply, _ = assistant.Fallback{}.Ask(cmd.Context(), question, network, nil)
	}
	fmt.Println(reply)
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Network statistics and balance",
		Run:   runStats,
	}
	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	sess, err := openSession(cmd.Context())
	if err != nil {
		exitErr("open session", err)
	}
	defer sess.close()

	st := sess.store.Stats()
	if formatFlag == "json" {
		printJSON(st)
		return
	}

	fmt.Printf("Connections: %d (avg strength %.1f)\n", st.Total, st.AverageStrength)
	fmt.Printf("Strong: %d   Need attention: %d   Interactions: %d\n", st.Strong, st.NeedsAttention, st.Interactions)
	fmt.Printf("By relationship: %v\n", st.ByRelationship)
	fmt.Printf("By priority: %v\n", st.ByPriority)
	fmt.Printf("By strength: %v\n", st.ByStrength)
	for _, r := range st.Recommendations {
		fmt.Printf("  tip: %s\n", r)
	}
}

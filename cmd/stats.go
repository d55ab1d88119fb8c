package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/toeicz/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show practice statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		rec, err := e.engine.History(cmd.Context())
		if err != nil {
			return err
		}
		t := stats.Compute(rec, e.engine.Today())

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Questions practiced: %d\n", t.TotalPracticed)
		fmt.Fprintf(out, "Correct answers:     %d\n", t.TotalCorrect)
		fmt.Fprintf(out, "Accuracy:            %d%%\n", t.Accuracy)
		fmt.Fprintf(out, "Streak:              %d day(s)\n\n", t.StreakDays)

		fmt.Fprintf(out, "%-30s  %8s  %8s  %8s  %8s\n", "Part", "Sessions", "Answered", "Correct", "Accuracy")
		fmt.Fprintln(out, strings.Repeat("─", 72))
		for _, p := range stats.ByPart(rec) {
			fmt.Fprintf(out, "%-30s  %8d  %8d  %8d  %7d%%\n",
				p.Part.DisplayName(), p.Sessions, p.Answered, p.Correct, p.Accuracy)
		}
		return nil
	},
}

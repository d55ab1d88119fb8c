package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/toeicz/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded sessions",
	Long: "List recorded sessions, oldest first. --where takes a CEL expression over\n" +
		"part, date, correct, total, accuracy and timestamp, e.g.\n\n" +
		"  toeicz history --where 'part == 5 && accuracy < 60'",
	RunE: func(cmd *cobra.Command, args []string) error {
		var filter *history.Filter
		if expr, _ := cmd.Flags().GetString("where"); expr != "" {
			f, err := history.NewFilter(expr)
			if err != nil {
				return err
			}
			filter = f
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		rec, err := e.engine.History(cmd.Context())
		if err != nil {
			return err
		}
		entries, err := history.Select(rec, filter)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, "No matching sessions.")
			return nil
		}
		loc := e.engine.Location()
		for _, en := range entries {
			s := en.Session
			fmt.Fprintf(out, "%s #%d  %s  %-30s %2d/%-2d %3d%%\n",
				en.Date, en.Index, s.Time().In(loc).Format("15:04"), s.Part.DisplayName(),
				s.Correct(), len(s.Questions), history.Percent(s.Correct(), len(s.Questions)))
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().String("where", "", "CEL filter expression")
}

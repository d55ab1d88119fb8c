package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/toeicz/internal/history"
	"github.com/abhisek/toeicz/internal/stats"
)

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Print a month of practice days",
	Long: "Print the practice calendar for a month. Days with practice are marked with *\n" +
		"and today with []. Use --day to list the sessions of one day.",
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
		out := cmd.OutOrStdout()
		today := e.engine.Today()

		if day, _ := cmd.Flags().GetString("day"); day != "" {
			if _, err := history.ParseDateKey(day); err != nil {
				return err
			}
			printDay(out, rec, day, e.engine.Location())
			return nil
		}

		month := e.engine.Now()
		if m, _ := cmd.Flags().GetString("month"); m != "" {
			month, err = time.Parse("2006-01", m)
			if err != nil {
				return fmt.Errorf("--month must be YYYY-MM: %w", err)
			}
		}
		printMonth(out, rec, month.Year(), month.Month(), today)
		return nil
	},
}

func init() {
	calendarCmd.Flags().String("month", "", "Month to show as YYYY-MM (default: current month)")
	calendarCmd.Flags().String("day", "", "List the sessions of one day (YYYY-MM-DD)")
}

func printMonth(w io.Writer, rec history.Record, year int, month time.Month, today string) {
	fmt.Fprintf(w, "%s %d\n", month, year)
	fmt.Fprintln(w, " Su   Mo   Tu   We   Th   Fr   Sa")

	cells := stats.MonthGrid(year, month, rec, today)
	for i, c := range cells {
		switch {
		case !c.InMonth:
			fmt.Fprint(w, "     ")
		case c.IsToday:
			fmt.Fprintf(w, "[%2d]%s", c.Day, mark(c.HasPractice))
		default:
			fmt.Fprintf(w, " %2d %s", c.Day, mark(c.HasPractice))
		}
		if i%7 == 6 {
			fmt.Fprintln(w)
		}
	}
}

func mark(practiced bool) string {
	if practiced {
		return "*"
	}
	return " "
}

func printDay(w io.Writer, rec history.Record, day string, loc *time.Location) {
	lines := stats.DayReview(rec, day)
	if len(lines) == 0 {
		fmt.Fprintf(w, "No practice on %s.\n", day)
		return
	}
	fmt.Fprintf(w, "%s\n", day)
	for _, l := range lines {
		fmt.Fprintf(w, "  #%d  %s  %-30s %d/%d\n",
			l.Index, l.Time.In(loc).Format("15:04"), l.PartName, l.Correct, l.Total)
	}
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/toeicz/internal/app"
)

var rootCmd = &cobra.Command{
	Use:   "toeicz",
	Short: "TOEIC practice trainer for the terminal",
	Long: "toeicz drills the seven TOEIC parts ten questions at a time, never repeating\n" +
		"a question within the same day, and keeps a calendar of your practice.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		skip, _ := cmd.Flags().GetBool("no-welcome")
		return runApp(cmd, app.Options{SkipWelcome: skip})
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides TOEICZ_DB env var)")
	rootCmd.PersistentFlags().String("bank", "", "Path to a question bank JSON file (default: built-in sample bank)")
	rootCmd.Flags().Bool("no-welcome", false, "Skip the welcome animation")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(calendarCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(speakCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

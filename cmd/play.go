package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/toeicz/internal/app"
	"github.com/abhisek/toeicz/internal/questionbank"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a practice session",
	Long:  "Open the trainer, optionally jumping straight into a part with --part.",
	RunE: func(cmd *cobra.Command, args []string) error {
		n, _ := cmd.Flags().GetInt("part")
		opts := app.Options{SkipWelcome: true}
		if n != 0 {
			part := questionbank.Part(n)
			if !part.Valid() {
				return fmt.Errorf("--part must be between %d and %d", questionbank.MinPart, questionbank.MaxPart)
			}
			opts.Part = part
		}
		return runApp(cmd, opts)
	},
}

func init() {
	playCmd.Flags().IntP("part", "p", 0, "Part to practice (1-7)")
}

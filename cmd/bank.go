package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/toeicz/internal/config"
	"github.com/abhisek/toeicz/internal/questionbank"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Inspect and validate question banks",
}

var bankInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the configured bank's version and question counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cmd.Flags())
		if err != nil {
			return err
		}
		bank, err := questionbank.Load(cfg.Bank)
		if err != nil {
			return err
		}

		source := cfg.Bank
		if source == "" {
			source = "(built-in sample)"
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Bank:    %s\n", source)
		fmt.Fprintf(out, "Version: %s\n\n", bank.Version)
		total := 0
		for _, p := range questionbank.AllParts() {
			kind := "reading"
			if p.IsAudio() {
				kind = "listening"
			}
			fmt.Fprintf(out, "%-30s  %-9s  %4d\n", p.DisplayName(), kind, bank.Count(p))
			total += bank.Count(p)
		}
		fmt.Fprintf(out, "%-30s  %-9s  %4d\n", "Total", "", total)
		return nil
	},
}

var bankValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a question bank file against the bank format",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bank, err := questionbank.LoadFile(args[0])
		if err != nil {
			return err
		}
		total := 0
		for _, p := range questionbank.AllParts() {
			total += bank.Count(p)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%s, %d questions)\n", args[0], bank.Version, total)
		return nil
	},
}

func init() {
	bankCmd.AddCommand(bankInfoCmd)
	bankCmd.AddCommand(bankValidateCmd)
}

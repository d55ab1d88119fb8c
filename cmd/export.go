package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/toeicz/internal/report"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export practice history as Markdown or HTML",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("format")
		format, err := report.ParseFormat(name)
		if err != nil {
			return err
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

		var w io.Writer = cmd.OutOrStdout()
		if path, _ := cmd.Flags().GetString("output"); path != "" && path != "-" {
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("create %s: %w", path, err)
			}
			defer f.Close()
			w = f
		}

		opts := report.Options{Today: e.engine.Today(), Location: e.engine.Location()}
		return report.Write(w, format, rec, opts)
	},
}

func init() {
	exportCmd.Flags().StringP("format", "f", "md", "Output format: md or html")
	exportCmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
}

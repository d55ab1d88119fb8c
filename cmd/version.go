package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version overrides the build info version when set via -ldflags.
var version string

// buildVersion reports the -ldflags version, or the module version that
// `go install` recorded, or "(devel)" for a local build.
func buildVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the toeicz version and Go toolchain",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		goVersion := "unknown"
		if info, ok := debug.ReadBuildInfo(); ok {
			goVersion = info.GoVersion
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "toeicz %s (%s)\n", buildVersion(), goVersion)
		return err
	},
}

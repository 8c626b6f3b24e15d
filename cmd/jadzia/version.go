package main

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is set at build time via ldflags:
//
//	go build -ldflags "-X main.version=1.0.0" ./cmd/jadzia
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the jadzia version, Go runtime and source revision",
	Run: func(cmd *cobra.Command, _ []string) {
		ver, revision := buildVersion()
		if short, _ := cmd.Flags().GetBool("short"); short {
			fmt.Fprintln(cmd.OutOrStdout(), ver)
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "jadzia %s (%s) : %s\n", ver, runtime.Version(), revision)
	},
}

func init() {
	versionCmd.Flags().Bool("short", false, "Print the version number only")
}

// buildVersion prefers the ldflags version, then the module version recorded
// by "go install". The revision comes from the embedded VCS stamp.
func buildVersion() (ver, revision string) {
	ver, revision = version, "unknown"
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ver, revision
	}
	if ver == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		ver = info.Main.Version
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && s.Value != "" {
			revision = s.Value
		}
	}
	return ver, revision
}

package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/mod/module"
	"golang.org/x/mod/semver"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "quizsmith", describeVersion(currentVersion()))
	},
}

// currentVersion prefers the -ldflags value, then the module version
// recorded by `go install`.
func currentVersion() string {
	if version != "(devel)" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return version
}

// describeVersion annotates v with its release channel.
func describeVersion(v string) string {
	switch {
	case !semver.IsValid(v):
		return v + " (development build)"
	case semver.Build(v) != "" || module.IsPseudoVersion(v):
		return v + " (development build)"
	case semver.Prerelease(v) != "":
		return semver.Canonical(v) + " (pre-release)"
	default:
		return semver.Canonical(v)
	}
}

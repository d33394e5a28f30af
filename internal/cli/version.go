package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fvr-cli/fvr/internal/buildinfo"
)

// buildDetails is the version information shown by 'fvr version'. Release
// builds inject buildinfo via ldflags; module builds fall back to the
// metadata the Go toolchain embeds.
type buildDetails struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuiltAt   string `json:"built_at,omitempty"`
	Dirty     bool   `json:"dirty,omitempty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

var readBuildInfo = debug.ReadBuildInfo

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show fvr version and build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		details := currentBuildDetails()

		if isJSONOutput() {
			outputSuccess(details, nil)
			return nil
		}

		version := details.Version
		if details.Dirty {
			version += " (modified)"
		}
		fmt.Printf("fvr %s\n", version)
		if details.Commit != "" {
			fmt.Printf("  commit: %s\n", details.Commit)
		}
		if details.BuiltAt != "" {
			fmt.Printf("  built:  %s\n", details.BuiltAt)
		}
		fmt.Printf("  go:     %s %s\n", details.GoVersion, details.Platform)
		return nil
	},
}

func currentBuildDetails() buildDetails {
	details := buildDetails{
		Version:   buildinfo.Version,
		Commit:    buildinfo.Commit,
		BuiltAt:   buildinfo.Date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	if info, ok := readBuildInfo(); ok && info != nil {
		if details.Version == "" {
			details.Version = info.Main.Version
		}
		if info.GoVersion != "" {
			details.GoVersion = info.GoVersion
		}
		goos, goarch := runtime.GOOS, runtime.GOARCH
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				if details.Commit == "" {
					details.Commit = setting.Value
				}
			case "vcs.time":
				if details.BuiltAt == "" {
					details.BuiltAt = setting.Value
				}
			case "vcs.modified":
				details.Dirty = strings.EqualFold(setting.Value, "true")
			case "GOOS":
				goos = setting.Value
			case "GOARCH":
				goarch = setting.Value
			}
		}
		details.Platform = goos + "/" + goarch
	}

	if details.Version == "" || details.Version == "(devel)" {
		details.Version = "devel"
	}
	return details
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

package main

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is stamped by release builds: -ldflags "-X main.version=v1.2.0".
var version string

type buildInfo struct {
	Version   string
	Revision  string
	Dirty     bool
	GoVersion string
}

func readBuildInfo() buildInfo {
	info := buildInfo{Version: version, Revision: "unknown", GoVersion: runtime.Version()}
	if bi, ok := debug.ReadBuildInfo(); ok {
		if info.Version == "" {
			info.Version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				info.Revision = s.Value[:min(len(s.Value), 12)]
			case "vcs.modified":
				info.Dirty = s.Value == "true"
			}
		}
	}
	if info.Version == "" {
		info.Version = "(devel)"
	}
	return info
}

func (b buildInfo) String() string {
	rev := b.Revision
	if b.Dirty {
		rev += "+dirty"
	}
	return fmt.Sprintf("%s (rev %s, %s)", b.Version, rev, b.GoVersion)
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "introscore %s\n", readBuildInfo())
		},
	}
}

package main

import (
	"fmt"

	"github.com/andy-sdc/backlight/internal/version"
	"github.com/spf13/cobra"
)

// CreateVersionCmd creates the version command.
func CreateVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and build information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			info := version.Get()
			fmt.Printf("backlightctl %s\n", info.Version)
			fmt.Printf("  commit:   %s\n", info.GitCommit)
			fmt.Printf("  built:    %s\n", info.BuildDate)
			fmt.Printf("  go:       %s\n", info.GoVersion)
			fmt.Printf("  platform: %s\n", info.Platform)
		},
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/andy-sdc/backlight/internal/logging"
	"github.com/andy-sdc/backlight/internal/updater"
	"github.com/spf13/cobra"
)

// CreateUpdateCmd creates the update command.
func CreateUpdateCmd(opts *options) *cobra.Command {
	var check bool
	var rollback bool
	var prerelease bool

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update backlightctl to the latest release",
		Long: `Downloads the latest release from GitHub and replaces the current binary, ` +
			`keeping a backup of the previous version. With --check, only reports whether ` +
			`an update is available; --rollback restores the backed up binary.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			logger := logging.GetLogger("cli")

			// The flag wins over the config file when given explicitly
			pre := opts.UpdatePrerelease
			if cmd.Flags().Changed("prerelease") {
				pre = prerelease
			}

			svc, err := updater.New(updater.Options{
				Repository: opts.UpdateRepository,
				Prerelease: pre,
			})
			if err != nil {
				logger.Error("Failed to initialize updater", "error", err)
				os.Exit(1)
			}
			if !svc.IsEnabled() {
				logger.Error("Updates are disabled", "reason", svc.DisabledReason())
				os.Exit(1)
			}

			ctx := cmd.Context()

			if rollback {
				if err := svc.Rollback(); err != nil {
					logger.Error("Rollback failed", "error", err)
					os.Exit(1)
				}
				fmt.Println("Rolled back to the previous version")
				return
			}

			info, err := svc.CheckForUpdate(ctx)
			if err != nil {
				logger.Error("Update check failed", "error", err)
				os.Exit(1)
			}

			if !info.UpdateAvailable {
				fmt.Printf("Already up to date (version %s)\n", info.CurrentVersion)
				return
			}

			if check {
				fmt.Printf("Update available: %s -> %s\n", info.CurrentVersion, info.LatestVersion)
				if info.ReleaseURL != "" {
					fmt.Printf("Release: %s\n", info.ReleaseURL)
				}
				return
			}

			if err := svc.ApplyUpdate(ctx); err != nil {
				logger.Error("Update failed", "error", err)
				os.Exit(1)
			}

			fmt.Printf("Updated to %s\n", info.LatestVersion)
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Only check whether an update is available")
	cmd.Flags().BoolVar(&rollback, "rollback", false, "Restore the previous binary from backup")
	cmd.Flags().BoolVar(&prerelease, "prerelease", false, "Include prereleases when resolving the latest version")

	return cmd
}

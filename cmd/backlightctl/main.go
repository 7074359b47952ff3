package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/andy-sdc/backlight"
	"github.com/andy-sdc/backlight/internal/config"
	"github.com/andy-sdc/backlight/internal/logging"
	"github.com/spf13/cobra"
)

const defaultUpdateRepository = "andy-sdc/backlight"

// options is the flat flag/config surface shared by all subcommands - flat
// structure with toml mapping.
type options struct {
	Config string `help:"Path to configuration file"`

	// Device settings
	Device    string `toml:"device.name" env:"DEVICE"`
	SysfsRoot string `toml:"device.sysfs_root" env:"SYSFS_ROOT"`

	// Update settings
	UpdateRepository string `toml:"update.repository" env:"UPDATE_REPOSITORY"`
	UpdatePrerelease bool   `toml:"update.prerelease" env:"UPDATE_PRERELEASE"`

	// Logging settings
	LogLevel  string `toml:"logging.level" env:"LOG_LEVEL"`
	LogFormat string `toml:"logging.format" env:"LOG_FORMAT"`
}

func main() {
	if err := createRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// createRootCmd creates the root command with persistent flags and the
// config/logging bootstrap shared by every subcommand.
func createRootCmd() *cobra.Command {
	opts := &options{
		UpdateRepository: defaultUpdateRepository,
	}

	root := &cobra.Command{
		Use:   "backlightctl",
		Short: "Control display backlight brightness via sysfs",
		Long: `backlightctl reads and writes the brightness and max_brightness files of a ` +
			`backlight device under /sys/class/backlight. Values print to stdout; ` +
			`diagnostics go to stderr and the systemd journal.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			// Load configuration automatically
			if loadErr := config.LoadConfig(opts, cmd); loadErr != nil {
				slog.Warn("Failed to load config", "error", loadErr)
			}

			// Initialize logging system: level and format follow the usual
			// flag > env > file precedence, per-module levels come from the
			// config file only.
			loggingConfig := config.LoadLoggingConfig(opts.Config)
			loggingConfig.Level = opts.LogLevel
			loggingConfig.Format = opts.LogFormat
			logging.Initialize(loggingConfig)
		},
	}

	root.PersistentFlags().StringVarP(&opts.Config, "config", "c", "backlightctl.toml", "Path to configuration file")
	root.PersistentFlags().StringVarP(&opts.Device, "device", "d", "", "Backlight device name (e.g. intel_backlight)")
	root.PersistentFlags().StringVar(&opts.SysfsRoot, "sysfs-root", backlight.DefaultSysfsRoot, "Backlight class directory")
	root.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "info", "Global logging level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&opts.LogFormat, "log-format", "text", "Logging format (text, json)")

	root.AddCommand(
		CreateGetCmd(opts),
		CreateMaxCmd(opts),
		CreateSetCmd(opts),
		CreateInfoCmd(opts),
		CreateVersionCmd(),
		CreateUpdateCmd(opts),
	)

	return root
}

// openDevice resolves the configured device into a backlight handle.
// Existence is not checked here; a missing device fails on first use.
func openDevice(opts *options) (*backlight.Device, error) {
	if opts.Device == "" {
		return nil, errors.New("no device specified (use --device, BACKLIGHT_DEVICE, or the config file)")
	}
	return backlight.New(opts.Device, backlight.WithSysfsRoot(opts.SysfsRoot)), nil
}

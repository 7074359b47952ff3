package main

import (
	"fmt"
	"os"

	"github.com/andy-sdc/backlight/internal/logging"
	"github.com/spf13/cobra"
)

// CreateGetCmd creates the get command.
func CreateGetCmd(opts *options) *cobra.Command {
	var percent bool

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Print the current brightness",
		Long: `Reads the current brightness from sysfs and prints it to stdout as a raw ` +
			`driver value, or with --percent as a percentage of max_brightness.`,
		Args: cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			logger := logging.GetLogger("cli")

			dev, err := openDevice(opts)
			if err != nil {
				logger.Error("No usable device", "error", err)
				os.Exit(1)
			}

			var value int
			if percent {
				value, err = dev.Percent()
			} else {
				value, err = dev.Brightness()
			}
			if err != nil {
				logger.Error("Failed to read brightness", "device", dev.Name(), "error", err)
				os.Exit(1)
			}

			fmt.Println(value)
		},
	}

	cmd.Flags().BoolVarP(&percent, "percent", "p", false, "Print the value as a percentage of max_brightness")

	return cmd
}

// CreateMaxCmd creates the max command.
func CreateMaxCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "max",
		Short: "Print the maximum brightness",
		Long:  `Reads max_brightness from sysfs and prints it to stdout.`,
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			logger := logging.GetLogger("cli")

			dev, err := openDevice(opts)
			if err != nil {
				logger.Error("No usable device", "error", err)
				os.Exit(1)
			}

			value, err := dev.MaxBrightness()
			if err != nil {
				logger.Error("Failed to read max_brightness", "device", dev.Name(), "error", err)
				os.Exit(1)
			}

			fmt.Println(value)
		},
	}
}

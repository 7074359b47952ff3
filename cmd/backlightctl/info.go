package main

import (
	"fmt"
	"os"

	"github.com/andy-sdc/backlight/internal/logging"
	"github.com/spf13/cobra"
)

// CreateInfoCmd creates the info command.
func CreateInfoCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print maximum, current, and percentage brightness",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			logger := logging.GetLogger("cli")

			dev, err := openDevice(opts)
			if err != nil {
				logger.Error("No usable device", "error", err)
				os.Exit(1)
			}

			max, err := dev.MaxBrightness()
			if err != nil {
				logger.Error("Failed to read max_brightness", "device", dev.Name(), "error", err)
				os.Exit(1)
			}
			fmt.Printf("Maximum brightness: %d\n", max)

			current, err := dev.Brightness()
			if err != nil {
				logger.Error("Failed to read brightness", "device", dev.Name(), "error", err)
				os.Exit(1)
			}
			fmt.Printf("Current brightness: %d\n", current)

			percent, err := dev.Percent()
			if err != nil {
				logger.Error("Failed to compute percentage", "device", dev.Name(), "error", err)
				os.Exit(1)
			}
			fmt.Printf("Current brightness: %d%%\n", percent)
		},
	}
}

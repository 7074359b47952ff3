package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/andy-sdc/backlight/internal/logging"
	"github.com/spf13/cobra"
)

// CreateSetCmd creates the set command.
func CreateSetCmd(opts *options) *cobra.Command {
	var percent bool

	cmd := &cobra.Command{
		Use:   "set <value>",
		Short: "Set the brightness",
		Long: `Writes a new brightness value. The value is a raw driver level by default, ` +
			`or with --percent a percentage between 1 and 100. Raw values are handed to ` +
			`the kernel unmodified; the driver decides how to treat values beyond max_brightness.`,
		Args: cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			logger := logging.GetLogger("cli")

			dev, err := openDevice(opts)
			if err != nil {
				logger.Error("No usable device", "error", err)
				os.Exit(1)
			}

			if percent {
				p, parseErr := parsePercent(args[0])
				if parseErr != nil {
					logger.Error("Invalid percentage", "value", args[0], "error", parseErr)
					os.Exit(1)
				}
				if err := dev.SetPercent(p); err != nil {
					logger.Error("Failed to set brightness", "device", dev.Name(), "percent", p, "error", err)
					os.Exit(1)
				}
				return
			}

			value, parseErr := parseBrightness(args[0])
			if parseErr != nil {
				logger.Error("Invalid brightness", "value", args[0], "error", parseErr)
				os.Exit(1)
			}
			if err := dev.SetBrightness(value); err != nil {
				logger.Error("Failed to set brightness", "device", dev.Name(), "value", value, "error", err)
				os.Exit(1)
			}
		},
	}

	cmd.Flags().BoolVarP(&percent, "percent", "p", false, "Interpret the value as a percentage of max_brightness")

	return cmd
}

// parsePercent parses a percentage argument. The conventional 1-100 range
// is enforced here; the library below stays validation-free.
func parsePercent(s string) (int, error) {
	p, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not an integer", s)
	}
	if p < 1 || p > 100 {
		return 0, fmt.Errorf("%d is out of range, should be between 1 and 100", p)
	}
	return p, nil
}

// parseBrightness parses a raw brightness argument.
func parseBrightness(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not an integer", s)
	}
	if v < 0 {
		return 0, fmt.Errorf("brightness is a non-negative integer, got %d", v)
	}
	return v, nil
}

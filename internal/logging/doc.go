// Package logging provides structured logging with per-module log level configuration.
//
// # Overview
//
// The logging system uses Go's slog package with automatic output routing:
//   - Logs to systemd journal when available (Linux systems with journald)
//   - Logs to stderr when a terminal, pipe, or file is connected
//   - Logs to both when both are available
//
// Diagnostics never go to stdout: that stream is reserved for command
// output (brightness values), so `backlightctl get` stays scriptable.
//
// # Usage
//
// Initialize the logging system once at startup:
//
//	logging.Initialize(logging.Config{
//		Level:  "info",      // Global log level: debug, info, warn, error
//		Format: "text",      // Output format: text or json
//		Modules: map[string]string{
//			"updater": "debug",  // Per-module overrides
//		},
//	})
//
// Get a logger for your module:
//
//	logger := logging.GetLogger("cli")
//	logger.Info("Setting brightness", "device", name, "value", v)
//	logger.Error("Failed", "error", err)
//
// # Output Destinations
//
// The system automatically detects available outputs:
//
//	Journal available + stderr available → MultiHandler (both)
//	Journal available only              → JournalHandler
//	Stderr available only               → TextHandler or JSONHandler
//
// Journal availability is checked via [github.com/coreos/go-systemd/v22/journal.Enabled].
//
// # Viewing Logs
//
// On a system with journald:
//
//	journalctl -t backlightctl              # All backlightctl logs
//	journalctl -t backlightctl -p err       # Errors only
//	journalctl -t backlightctl MODULE=updater
//
// # Configuration
//
// Log levels can be set globally or per-module. Module-specific levels
// override the global level for that module only.
//
// Example TOML configuration:
//
//	[logging]
//	level = "info"
//	format = "text"
//	updater = "debug"
package logging

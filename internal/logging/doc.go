// Package logging provides structured logging with per-module log level
// configuration.
//
// # Overview
//
// The logging system uses Go's slog package with automatic output routing:
//   - Logs to systemd journal when available (Linux systems with journald)
//   - Logs to stdout when a terminal, pipe, or file is connected
//   - Logs to both when both are available
//
// An in-memory ring buffer additionally records recent entries so the
// daemon's /api/logs endpoint can serve log history without touching disk.
//
// # Usage
//
// Initialize the logging system once at startup:
//
//	logging.Initialize(logging.Config{
//		Level:  "info",      // Global log level: debug, info, warn, error
//		Format: "text",      // Output format: text or json
//		Modules: map[string]string{
//			"engine": "debug",  // Per-module overrides
//			"api":    "warn",
//		},
//	})
//
// Get a logger for your module:
//
//	logger := logging.GetLogger("engine")
//	logger.Info("Worker spawned", "pid", pid)
//
// Levels can be changed at runtime, which is how config hot reload applies
// logging changes without a restart:
//
//	logging.SetLevel("engine", "debug")
//
// # Viewing Logs
//
// When running as a systemd service or on a system with journald:
//
//	journalctl -t exifd              # All exifd logs
//	journalctl -t exifd -f           # Follow live
//	journalctl -t exifd MODULE=engine
//
// # Configuration
//
// Example TOML configuration:
//
//	[logging]
//	level = "info"
//	format = "text"
//
//	[logging.modules]
//	engine = "debug"
//	api = "warn"
package logging

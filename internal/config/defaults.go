package config

import (
	"os"
	"path/filepath"
)

// defaults returns the values loaded before the config file and environment.
func defaults() map[string]any {
	return map[string]any{
		"db.path":                DefaultDBPath(),
		"log.level":              "warn",
		"log.format":             "text",
		"user.login":             "admin",
		"telemetry.enabled":      false,
		"telemetry.exporter":     "stdout",
		"telemetry.endpoint":     "",
		"telemetry.service_name": "basekit",
	}
}

// DefaultDBPath is ~/.basekit/basekit.db, or basekit.db in the working
// directory when the home directory is unknown.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "basekit.db"
	}
	return filepath.Join(home, ".basekit", "basekit.db")
}

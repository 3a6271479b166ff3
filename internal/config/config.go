// Package config loads basekit settings from built-in defaults, an optional
// YAML file, and BASEKIT_ environment variables, in that order of
// precedence.
package config

// Config is the root configuration.
type Config struct {
	DB        DBConfig        `koanf:"db"`
	Log       LogConfig       `koanf:"log"`
	User      UserConfig      `koanf:"user"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
}

type DBConfig struct {
	// Path is the SQLite database file, or ":memory:".
	Path string `koanf:"path"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// UserConfig names the acting user. Date input is read in that user's
// language.
type UserConfig struct {
	Login string `koanf:"login"`
}

type TelemetryConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Exporter    string `koanf:"exporter"`
	Endpoint    string `koanf:"endpoint"`
	ServiceName string `koanf:"service_name"`
}

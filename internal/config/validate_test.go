package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		DB:        DBConfig{Path: ":memory:"},
		Log:       LogConfig{Level: "info", Format: "json"},
		User:      UserConfig{Login: "admin"},
		Telemetry: TelemetryConfig{Exporter: "stdout", ServiceName: "basekit"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"empty db path", func(c *Config) { c.DB.Path = " " }, "db.path"},
		{"empty login", func(c *Config) { c.User.Login = "" }, "user.login"},
		{"disabled telemetry ignores exporter", func(c *Config) { c.Telemetry.Exporter = "zipkin" }, ""},
		{"bad exporter", func(c *Config) {
			c.Telemetry.Enabled = true
			c.Telemetry.Exporter = "zipkin"
		}, "telemetry.exporter"},
		{"otlp without endpoint", func(c *Config) {
			c.Telemetry.Enabled = true
			c.Telemetry.Exporter = "otlp"
		}, "telemetry.endpoint"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestBuildEnvLookup(t *testing.T) {
	lookup := buildEnvLookup([]string{"db.path", "telemetry.service_name"})
	assert.Equal(t, "db.path", lookup["db_path"])
	assert.Equal(t, "telemetry.service_name", lookup["telemetry_service_name"])
}

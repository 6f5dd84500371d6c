// Package config loads playback-server configuration from file and
// environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all playback-server configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Playback PlaybackConfig `mapstructure:"playback"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type ServerConfig struct {
	Port         int `mapstructure:"port"`
	ReadTimeout  int `mapstructure:"read_timeout"`  // seconds
	WriteTimeout int `mapstructure:"write_timeout"` // seconds
}

// ReadTimeoutDuration returns the read timeout as a duration.
func (s ServerConfig) ReadTimeoutDuration() time.Duration {
	return time.Duration(s.ReadTimeout) * time.Second
}

// WriteTimeoutDuration returns the write timeout as a duration.
func (s ServerConfig) WriteTimeoutDuration() time.Duration {
	return time.Duration(s.WriteTimeout) * time.Second
}

type PlaybackConfig struct {
	TickRateMS      int     `mapstructure:"tick_rate_ms"`
	SpeedMultiplier float64 `mapstructure:"speed_multiplier"`
	Loop            bool    `mapstructure:"loop"`
	RouteFile       string  `mapstructure:"route_file"` // optional route to preload
}

// TickRate returns the tick cadence as a duration.
func (p PlaybackConfig) TickRate() time.Duration {
	return time.Duration(p.TickRateMS) * time.Millisecond
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from config.yaml and environment variables.
// Environment variables use the VEHICLE_MOVEMENT_ prefix, e.g.
// VEHICLE_MOVEMENT_SERVER_PORT maps to server.port.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("playback.tick_rate_ms", 100)
	v.SetDefault("playback.speed_multiplier", 1.0)
	v.SetDefault("playback.loop", false)
	v.SetDefault("playback.route_file", "")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	v.SetEnvPrefix("VEHICLE_MOVEMENT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}
	if c.Playback.TickRateMS <= 0 {
		errs = append(errs, "playback.tick_rate_ms must be positive")
	}
	if c.Playback.SpeedMultiplier <= 0 {
		errs = append(errs, "playback.speed_multiplier must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

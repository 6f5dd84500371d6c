package playback

import "time"

// Config holds the tunable options for a playback session.
type Config struct {
	TickRate        time.Duration // cadence the driver delivers ticks at
	SpeedMultiplier float64       // 1.0 = real-time, 2.0 = 2x speed, etc.
	Loop            bool          // restart from the first waypoint instead of completing
	Duration        time.Duration // how long the driver runs (0 = until completion)
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		TickRate:        100 * time.Millisecond,
		SpeedMultiplier: 1.0,
		Loop:            false,
		Duration:        0,
	}
}

// Validate checks if the configuration is valid and returns an error if not.
func (c *Config) Validate() error {
	if c.TickRate <= 0 {
		return ErrInvalidTickRate
	}
	if c.SpeedMultiplier <= 0 {
		return ErrInvalidSpeedMultiplier
	}
	return nil
}

package session

import "time"

// Config holds session manager configuration.
type Config struct {
	// TTL is the idle timeout.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"720h"`
	// TouchInterval is the minimum time between expiration updates (0 = disabled).
	TouchInterval time.Duration `env:"SESSION_TOUCH_INTERVAL" envDefault:"5m"`
}

// DefaultConfig returns the configuration used when no options are given.
func DefaultConfig() Config {
	return Config{
		TTL:           30 * 24 * time.Hour,
		TouchInterval: 5 * time.Minute,
	}
}

// Option is a functional option for configuring the session manager.
type Option func(*Config)

// WithConfig replaces the whole configuration. A zero TTL keeps the default.
func WithConfig(cfg Config) Option {
	return func(c *Config) {
		if cfg.TTL > 0 {
			c.TTL = cfg.TTL
		}
		c.TouchInterval = cfg.TouchInterval
	}
}

// WithTTL sets the session time-to-live.
func WithTTL(ttl time.Duration) Option {
	return func(c *Config) {
		c.TTL = ttl
	}
}

// WithTouchInterval sets the minimum time between expiration updates.
// Set to 0 to disable touching.
func WithTouchInterval(interval time.Duration) Option {
	return func(c *Config) {
		c.TouchInterval = interval
	}
}

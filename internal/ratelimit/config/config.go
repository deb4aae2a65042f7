package config

import "time"

// Config holds the submission rate limit settings.
type Config struct {
	// Window is the sliding window length.
	Window time.Duration

	// MaxRequests is the number of requests allowed per client within the
	// window.
	MaxRequests int
}

// DefaultConfig returns the production defaults: 10 submissions per minute
// per client IP.
func DefaultConfig() *Config {
	return &Config{
		Window:      time.Minute,
		MaxRequests: 10,
	}
}

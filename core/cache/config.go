package cache

import "time"

// Config holds configuration for the detail response cache.
type Config struct {
	// URL is the redis connection URL. Empty disables caching.
	URL string `mapstructure:"url" default:""`
	// TTLSeconds is how long a cached response stays valid.
	TTLSeconds int `mapstructure:"ttl_seconds" default:"86400"`
}

// Enabled reports whether a cache URL is configured.
func (c Config) Enabled() bool {
	return c.URL != ""
}

// TTL returns the entry lifetime, one day when unset.
func (c Config) TTL() time.Duration {
	if c.TTLSeconds <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.TTLSeconds) * time.Second
}

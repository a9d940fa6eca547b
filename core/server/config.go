package server

import "time"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables auth.
	ApiKey string `mapstructure:"api_key" default:""`
	// PrepareTimeoutSeconds bounds a single prepare run triggered over HTTP.
	PrepareTimeoutSeconds int `mapstructure:"prepare_timeout_seconds" default:"600"`
}

// Address returns the listen address for the configured port.
func (c Config) Address() string {
	if c.Port == "" {
		return ":8080"
	}
	return ":" + c.Port
}

// PrepareTimeout returns the run timeout, falling back to ten minutes.
func (c Config) PrepareTimeout() time.Duration {
	if c.PrepareTimeoutSeconds <= 0 {
		return 10 * time.Minute
	}
	return time.Duration(c.PrepareTimeoutSeconds) * time.Second
}

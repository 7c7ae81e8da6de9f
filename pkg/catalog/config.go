package catalog

import (
	"errors"
	"time"
)

// ErrInvalidConfig is returned by NewClient when required settings are missing
var ErrInvalidConfig = errors.New("invalid catalog client config")

// Config represents the configuration for the catalog API client
type Config struct {
	// BaseURL is the catalog API root, e.g. https://api.example.com/api/v1
	BaseURL string

	// Token is sent as a bearer token on every request
	Token string

	// Timeout bounds each request; zero means 30 seconds
	Timeout time.Duration
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrInvalidConfig
	}
	if c.Timeout < 0 {
		return ErrInvalidConfig
	}
	return nil
}

package logging

import (
	"fmt"
)

// Config holds logging-related configuration
type Config struct {
	File       string `json:"file"`        // Path to log file
	MaxSize    int    `json:"max_size"`    // Max size in MB
	MaxBackups int    `json:"max_backups"` // Number of backups to keep
	MaxAge     int    `json:"max_age"`     // Max age in days
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.File == "" {
		return fmt.Errorf("log file path must be set")
	}

	if c.MaxSize <= 0 {
		return fmt.Errorf("max_size must be positive")
	}

	if c.MaxBackups < 0 {
		return fmt.Errorf("max_backups must be non-negative")
	}

	if c.MaxAge < 0 {
		return fmt.Errorf("max_age must be non-negative")
	}

	return nil
}

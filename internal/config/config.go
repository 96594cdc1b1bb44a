// Package config loads command line defaults from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the settings of the cryt command.
type Config struct {
	// MaxInput is the largest input, in bytes, the command will read.
	MaxInput int64

	// MaxKeysize is the default upper bound of keysize searches.
	MaxKeysize int

	// KeysizeCeiling is the largest upper bound a search may be given.
	KeysizeCeiling int

	// Color enables styled output on terminals.
	Color bool
}

// Default values
const (
	DefaultMaxInput   = 16 << 20
	DefaultMaxKeysize = 40

	DefaultKeysizeCeiling = 4096
)

// Load loads configuration from environment variables
func Load() *Config {
	_, noColor := os.LookupEnv("NO_COLOR")
	return &Config{
		MaxInput:       int64(getEnvInt("CRYT_MAX_INPUT", DefaultMaxInput)),
		MaxKeysize:     getEnvInt("CRYT_MAX_KEYSIZE", DefaultMaxKeysize),
		KeysizeCeiling: getEnvInt("CRYT_KEYSIZE_CEILING", DefaultKeysizeCeiling),
		Color:          !noColor,
	}
}

// getEnvInt gets a positive integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil && intVal > 0 {
			return intVal
		}
	}
	return defaultValue
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("max input: %d bytes, max keysize: %d (ceiling %d), color: %v",
		c.MaxInput, c.MaxKeysize, c.KeysizeCeiling, c.Color)
}

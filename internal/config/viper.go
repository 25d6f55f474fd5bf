// Package config provides helpers on top of Viper for reading settings
// that may arrive through config files, COFFEED_-prefixed environment
// variables, or raw environment variables from .env files.
package config

import (
	"os"

	"github.com/spf13/viper"
)

// GetString is a helper to get string values from Viper.
// It checks both OS environment variables and Viper configuration.
func GetString(key string) string {
	// Check OS env directly first
	osValue := os.Getenv(key)
	viperValue := viper.GetString(key)

	// If Viper doesn't have it but OS does, return OS value
	if viperValue == "" && osValue != "" {
		return osValue
	}
	return viperValue
}

// GetInt returns an integer setting, falling back to zero when unset or
// unparsable.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a boolean setting.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

package config

import (
	"os"
	"strconv"
)

// GetEnv returns the value of an environment variable, or fallback when the
// variable is unset.
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// GetEnvAsInt reads an environment variable as an integer. Unset or
// non-numeric values yield fallback.
func GetEnvAsInt(key string, fallback int) int {
	valueStr := GetEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

package util

import (
	"os"
	"strings"
	"time"
)

// EnvOrDefault returns the environment variable value or fallback when it is empty.
func EnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// EnvDuration parses the variable with time.ParseDuration. Empty or invalid
// values yield fallback; ok is false only for invalid values.
func EnvDuration(key string, fallback time.Duration) (d time.Duration, ok bool) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, true
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback, false
	}
	return d, true
}

// EnvList splits a comma separated variable, dropping blank items. An unset
// variable yields fallback.
func EnvList(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	return SplitList(value)
}

// SplitList splits s on commas and trims each item.
func SplitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

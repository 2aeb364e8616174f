package utils

import (
	"os"
	"strconv"
	"time"
)

// Typed environment lookups. A missing or unparsable value falls back to
// the default rather than failing; required variables are checked once at
// startup in main.

func GetEnvAsString(key, defaultVal string) string {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal
	}
	return raw
}

func GetEnvAsInt(key string, defaultVal int) int {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}
	return n
}

func GetEnvAsUint64(key string, defaultVal uint64) uint64 {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return defaultVal
	}
	return n
}

func GetEnvAsBool(key string, defaultVal bool) bool {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return defaultVal
	}
	return b
}

func GetEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return defaultVal
	}
	return d
}

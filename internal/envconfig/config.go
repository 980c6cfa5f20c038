// Package envconfig reads the configuration of the gangen tools from environment variables.
package envconfig

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"
)

// LogLevel returns the log level for the application.
// Values are 0 or false INFO (Default), 1 or true DEBUG, 2 TRACE.
func LogLevel() slog.Level {
	level := slog.LevelInfo
	if s := Var("GANGEN_DEBUG"); s != "" {
		if b, _ := strconv.ParseBool(s); b {
			level = slog.LevelDebug
		} else if i, _ := strconv.ParseInt(s, 10, 64); i != 0 {
			level = slog.Level(i * -4)
		}
	}
	return level
}

// Debug reports whether debug logging is enabled.
func Debug() bool {
	return LogLevel() <= slog.LevelDebug
}

var (
	// Seed used to initialize the generator parameters.
	Seed = Uint64("GANGEN_SEED", 0)

	// Strategy is the default generator strategy of the CLI.
	Strategy = String("GANGEN_STRATEGY")

	// Plugin is the PJRT plugin used to execute exported programs, e.g. "cpu".
	Plugin = String("GANGEN_PLUGIN")
)

// Workers returns the maximum number of examples evaluated concurrently.
// Configurable via GANGEN_WORKERS, default is GOMAXPROCS.
func Workers() int {
	return int(Uint("GANGEN_WORKERS", uint(runtime.GOMAXPROCS(0)))())
}

// String returns a function that reads the environment variable s.
func String(s string) func() string {
	return func() string {
		return Var(s)
	}
}

// Uint returns a function that reads key as an uint, or returns defaultValue if it is not set or invalid.
func Uint(key string, defaultValue uint) func() uint {
	return func() uint {
		if s := Var(key); s != "" {
			if n, err := strconv.ParseUint(s, 10, 64); err != nil {
				slog.Warn("invalid environment variable, using default", "key", key, "value", s, "default", defaultValue)
			} else {
				return uint(n)
			}
		}
		return defaultValue
	}
}

// Uint64 returns a function that reads key as an uint64, or returns defaultValue if it is not set or invalid.
func Uint64(key string, defaultValue uint64) func() uint64 {
	return func() uint64 {
		if s := Var(key); s != "" {
			if n, err := strconv.ParseUint(s, 10, 64); err != nil {
				slog.Warn("invalid environment variable, using default", "key", key, "value", s, "default", defaultValue)
			} else {
				return n
			}
		}
		return defaultValue
	}
}

// EnvVar describes one configuration variable.
type EnvVar struct {
	Name        string
	Value       any
	Description string
}

// AsMap returns all the configuration variables, with their current values.
func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"GANGEN_DEBUG":    {"GANGEN_DEBUG", LogLevel(), "Show additional debug information (e.g. GANGEN_DEBUG=1)"},
		"GANGEN_SEED":     {"GANGEN_SEED", Seed(), "Seed used to initialize the generator parameters (default 0)"},
		"GANGEN_STRATEGY": {"GANGEN_STRATEGY", Strategy(), "Default generator strategy (default \"baseline\")"},
		"GANGEN_WORKERS":  {"GANGEN_WORKERS", Workers(), "Maximum number of examples evaluated concurrently (default GOMAXPROCS)"},
		"GANGEN_PLUGIN":   {"GANGEN_PLUGIN", Plugin(), "PJRT plugins used by the execution tests, |-separated (default \"cpu\")"},
	}
}

// Values returns the current values of all configuration variables, as strings.
func Values() map[string]string {
	vals := make(map[string]string)
	for k, v := range AsMap() {
		vals[k] = fmt.Sprintf("%v", v.Value)
	}
	return vals
}

// Var returns an environment variable stripped of leading and trailing quotes or spaces.
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}

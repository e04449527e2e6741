// Package config provides reusable environment loaders and validators
// with fail-open semantics: invalid values fall back to defaults and
// surface as warnings and metrics instead of startup failures.
package config

import (
	"fmt"
	"os"
	"time"
)

// ConfigLoadResult is the outcome of loading one configuration value.
// Value holds the loaded (or fallback) value; FallbackApplied is true
// when validation or parsing failed and the default was used.
type ConfigLoadResult struct {
	Value           interface{}
	Warnings        []string
	FallbackApplied bool
}

// LoadEnvString returns the environment value, or defaultValue when the
// variable is unset. No validation.
func LoadEnvString(envKey, defaultValue string) string {
	value := os.Getenv(envKey)
	if value == "" {
		return defaultValue
	}
	return value
}

// LoadEnvWithFallback loads a string with validation. An unset variable
// uses the default silently; a set but invalid one falls back with a
// warning.
func LoadEnvWithFallback(envKey, defaultValue string, validator func(string) error) ConfigLoadResult {
	value := os.Getenv(envKey)
	if value == "" {
		return ConfigLoadResult{Value: defaultValue}
	}

	if validator != nil {
		if err := validator(value); err != nil {
			return ConfigLoadResult{
				Value:           defaultValue,
				Warnings:        []string{fmt.Sprintf("Invalid %s='%s': %v, falling back to default '%s'", envKey, value, err, defaultValue)},
				FallbackApplied: true,
			}
		}
	}
	return ConfigLoadResult{Value: value}
}

// LoadEnvDuration loads a Go duration string ("30s", "5m") with
// validation, falling back to the default on parse or validation failure.
func LoadEnvDuration(envKey string, defaultValue time.Duration, validator func(time.Duration) error) ConfigLoadResult {
	valueStr := os.Getenv(envKey)
	if valueStr == "" {
		return ConfigLoadResult{Value: defaultValue}
	}

	parsed, err := time.ParseDuration(valueStr)
	if err != nil {
		return ConfigLoadResult{
			Value:           defaultValue,
			Warnings:        []string{fmt.Sprintf("Invalid %s='%s': %v, falling back to default '%v'", envKey, valueStr, err, defaultValue)},
			FallbackApplied: true,
		}
	}

	if validator != nil {
		if err := validator(parsed); err != nil {
			return ConfigLoadResult{
				Value:           defaultValue,
				Warnings:        []string{fmt.Sprintf("Invalid %s='%s': %v, falling back to default '%v'", envKey, valueStr, err, defaultValue)},
				FallbackApplied: true,
			}
		}
	}
	return ConfigLoadResult{Value: parsed}
}

// LoadEnvInt loads an integer with validation, falling back to the
// default on parse or validation failure.
func LoadEnvInt(envKey string, defaultValue int, validator func(int) error) ConfigLoadResult {
	valueStr := os.Getenv(envKey)
	if valueStr == "" {
		return ConfigLoadResult{Value: defaultValue}
	}

	var parsed int
	if _, err := fmt.Sscanf(valueStr, "%d", &parsed); err != nil {
		return ConfigLoadResult{
			Value:           defaultValue,
			Warnings:        []string{fmt.Sprintf("Invalid %s='%s': invalid integer format, falling back to default '%d'", envKey, valueStr, defaultValue)},
			FallbackApplied: true,
		}
	}

	if validator != nil {
		if err := validator(parsed); err != nil {
			return ConfigLoadResult{
				Value:           defaultValue,
				Warnings:        []string{fmt.Sprintf("Invalid %s='%s': %v, falling back to default '%d'", envKey, valueStr, err, defaultValue)},
				FallbackApplied: true,
			}
		}
	}
	return ConfigLoadResult{Value: parsed}
}

// LoadEnvBool loads a boolean ("true"/"false", "1"/"0", "t"/"f"), falling
// back to the default on anything else.
func LoadEnvBool(envKey string, defaultValue bool) ConfigLoadResult {
	valueStr := os.Getenv(envKey)
	if valueStr == "" {
		return ConfigLoadResult{Value: defaultValue}
	}

	var parsed bool
	switch valueStr {
	case "1", "t", "T", "true", "TRUE", "True":
		parsed = true
	case "0", "f", "F", "false", "FALSE", "False":
		parsed = false
	default:
		return ConfigLoadResult{
			Value:           defaultValue,
			Warnings:        []string{fmt.Sprintf("Invalid %s='%s': invalid boolean format, expected 'true' or 'false', falling back to default '%t'", envKey, valueStr, defaultValue)},
			FallbackApplied: true,
		}
	}
	return ConfigLoadResult{Value: parsed}
}

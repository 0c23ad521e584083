package config

import "errors"

// Sentinel errors for configuration loading.
var (
	// ErrInvalid indicates a setting holds an unusable value.
	ErrInvalid = errors.New("invalid config")

	// ErrUnsupportedFormat indicates a config file extension that is neither
	// YAML nor TOML.
	ErrUnsupportedFormat = errors.New("unsupported config format")
)

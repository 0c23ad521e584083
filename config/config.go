package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/titletrunc/abbrev"
	"github.com/randalmurphal/titletrunc/format"
	"github.com/randalmurphal/titletrunc/normalize"
	"github.com/randalmurphal/titletrunc/selector"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// EnvPrefix prefixes every environment variable read by LoadFromEnv.
const EnvPrefix = "TITLETRUNC_"

// Config holds titletrunc settings.
type Config struct {
	// --- Selection ---

	// MaxLength is the longest acceptable title, in characters.
	// Default: 50.
	MaxLength int `json:"max_length" yaml:"max_length" toml:"max_length" jsonschema:"minimum=2,default=50" jsonschema_description:"Longest acceptable title in characters"`

	// Force re-asks items that already have a short title.
	Force bool `json:"force" yaml:"force" toml:"force" jsonschema_description:"Also process items that already have a short title"`

	// Library is the path of the YAML track library. "~" is expanded.
	Library string `json:"library" yaml:"library" toml:"library" jsonschema_description:"Path of the track library"`

	// --- Display ---

	// ItemFormat renders the item header above the menu.
	ItemFormat string `json:"item_format" yaml:"item_format" toml:"item_format" jsonschema_description:"Template for the item header"`

	// TrackFormat renders one line of the album listing.
	TrackFormat string `json:"track_format" yaml:"track_format" toml:"track_format" jsonschema_description:"Template for album track lines"`

	// Color controls highlighting: auto, always or never.
	// Default: auto.
	Color string `json:"color" yaml:"color" toml:"color" jsonschema:"enum=auto,enum=always,enum=never,default=auto"`

	// PageSize is the number of menu entries shown at once.
	// Default: 12.
	PageSize int `json:"page_size" yaml:"page_size" toml:"page_size" jsonschema:"minimum=1,default=12"`

	// EditMaxLength caps free-form edits, in characters.
	// Default: 50.
	EditMaxLength int `json:"edit_max_length" yaml:"edit_max_length" toml:"edit_max_length" jsonschema:"minimum=1,default=50"`

	// --- Heuristics ---

	// Separators lists the characters titles are cut at, after
	// normalization.
	Separators string `json:"separators" yaml:"separators" toml:"separators" jsonschema_description:"Characters titles are cut at, after normalization"`

	// PrimarySeparator is tried on its own before the full set.
	PrimarySeparator string `json:"primary_separator" yaml:"primary_separator" toml:"primary_separator" jsonschema:"maxLength=1"`

	// KeyRemoval enables dropping musical keys ("in C# minor").
	// Default: true.
	KeyRemoval bool `json:"key_removal" yaml:"key_removal" toml:"key_removal" jsonschema:"default=true"`

	// ComposeUnicode applies NFC composition before the replacement table.
	ComposeUnicode bool `json:"compose_unicode" yaml:"compose_unicode" toml:"compose_unicode"`

	// Replacements are appended to the built-in normalization table.
	Replacements []normalize.Replacement `json:"replacements,omitempty" yaml:"replacements,omitempty" toml:"replacements,omitempty"`

	// --- Logging ---

	// LogLevel is one of debug, info, warn, error.
	// Default: warn.
	LogLevel string `json:"log_level" yaml:"log_level" toml:"log_level" jsonschema:"enum=debug,enum=info,enum=warn,enum=error,default=warn"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxLength:        50,
		ItemFormat:       format.DefaultItemFormat,
		TrackFormat:      format.DefaultTrackFormat,
		Color:            ColorAuto,
		PageSize:         12,
		EditMaxLength:    selector.EditLimit,
		Separators:       string(abbrev.DefaultSeparators),
		PrimarySeparator: string(abbrev.DefaultPrimary),
		KeyRemoval:       true,
		LogLevel:         "warn",
	}
}

// SearchPaths returns the files FindFile looks for, in order.
func SearchPaths() []string {
	paths := []string{"titletrunc.yaml", "titletrunc.yml", "titletrunc.toml"}
	if home, err := homedir.Dir(); err == nil {
		dir := filepath.Join(home, ".config", "titletrunc")
		paths = append(paths,
			filepath.Join(dir, "config.yaml"),
			filepath.Join(dir, "config.yml"),
			filepath.Join(dir, "config.toml"),
		)
	}
	return paths
}

// FindFile returns the first existing file from SearchPaths, or "" if
// none exists.
func FindFile() string {
	for _, p := range SearchPaths() {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// LoadFile overlays the settings in path onto c. Keys missing from the
// file keep their current value.
func (c *Config) LoadFile(path string) error {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("expand %s: %w", path, err)
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(expanded)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse %s: %w", expanded, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), c); err != nil {
			return fmt.Errorf("parse %s: %w", expanded, err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return nil
}

// LoadDotEnv adds the variables in files (default ".env") to the process
// environment. Variables already set win. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// LoadFromEnv populates config fields from environment variables.
// Environment variables use the TITLETRUNC_ prefix and take precedence over
// existing values. Unparseable numbers and booleans are ignored.
//
// Supported variables:
//   - TITLETRUNC_MAX_LENGTH
//   - TITLETRUNC_FORCE
//   - TITLETRUNC_LIBRARY
//   - TITLETRUNC_ITEM_FORMAT
//   - TITLETRUNC_TRACK_FORMAT
//   - TITLETRUNC_COLOR
//   - TITLETRUNC_PAGE_SIZE
//   - TITLETRUNC_EDIT_MAX_LENGTH
//   - TITLETRUNC_SEPARATORS
//   - TITLETRUNC_KEY_REMOVAL
//   - TITLETRUNC_COMPOSE_UNICODE
//   - TITLETRUNC_LOG_LEVEL
func (c *Config) LoadFromEnv() {
	if v := os.Getenv(EnvPrefix + "MAX_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxLength = n
		}
	}
	if v := os.Getenv(EnvPrefix + "FORCE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Force = b
		}
	}
	if v := os.Getenv(EnvPrefix + "LIBRARY"); v != "" {
		c.Library = v
	}
	if v := os.Getenv(EnvPrefix + "ITEM_FORMAT"); v != "" {
		c.ItemFormat = v
	}
	if v := os.Getenv(EnvPrefix + "TRACK_FORMAT"); v != "" {
		c.TrackFormat = v
	}
	if v := os.Getenv(EnvPrefix + "COLOR"); v != "" {
		c.Color = v
	}
	if v := os.Getenv(EnvPrefix + "PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.PageSize = n
		}
	}
	if v := os.Getenv(EnvPrefix + "EDIT_MAX_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.EditMaxLength = n
		}
	}
	if v := os.Getenv(EnvPrefix + "SEPARATORS"); v != "" {
		c.Separators = v
	}
	if v := os.Getenv(EnvPrefix + "KEY_REMOVAL"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.KeyRemoval = b
		}
	}
	if v := os.Getenv(EnvPrefix + "COMPOSE_UNICODE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.ComposeUnicode = b
		}
	}
	if v := os.Getenv(EnvPrefix + "LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// Load builds a Config from defaults, the file at path (or the first file
// FindFile reports when path is empty), .env and the environment. The
// returned string is the file actually read, "" if none.
func Load(path string) (Config, string, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = FindFile()
	}
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return Config{}, "", err
		}
	}

	if err := LoadDotEnv(); err != nil {
		return Config{}, "", err
	}
	cfg.LoadFromEnv()

	return cfg, path, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.MaxLength < 2 {
		return fmt.Errorf("%w: max_length must be >= 2, got %d", ErrInvalid, c.MaxLength)
	}
	if c.EditMaxLength < 1 {
		return fmt.Errorf("%w: edit_max_length must be >= 1, got %d", ErrInvalid, c.EditMaxLength)
	}
	if c.PageSize < 1 {
		return fmt.Errorf("%w: page_size must be >= 1, got %d", ErrInvalid, c.PageSize)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w: color must be auto, always or never, got %q", ErrInvalid, c.Color)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Separators == "" {
		return fmt.Errorf("%w: separators must not be empty", ErrInvalid)
	}
	if n := len([]rune(c.PrimarySeparator)); n != 1 {
		return fmt.Errorf("%w: primary_separator must be one character, got %q", ErrInvalid, c.PrimarySeparator)
	}
	for i, r := range c.Replacements {
		if r.Old == "" {
			return fmt.Errorf("%w: replacement %d has an empty old value", ErrInvalid, i)
		}
	}
	return nil
}

// LibraryPath returns Library with "~" expanded.
func (c *Config) LibraryPath() (string, error) {
	if c.Library == "" {
		return "", fmt.Errorf("%w: library is required", ErrInvalid)
	}
	p, err := homedir.Expand(c.Library)
	if err != nil {
		return "", fmt.Errorf("expand library path: %w", err)
	}
	return p, nil
}

// Level returns LogLevel as a slog level, warn when unset or unknown.
func (c *Config) Level() slog.Level {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelWarn
	}
	return level
}

// SeparatorRunes returns Separators as individual characters.
func (c *Config) SeparatorRunes() []rune {
	return []rune(c.Separators)
}

// Primary returns the primary separator, or abbrev.DefaultPrimary when
// unset.
func (c *Config) Primary() rune {
	if r := []rune(c.PrimarySeparator); len(r) > 0 {
		return r[0]
	}
	return abbrev.DefaultPrimary
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("%w: log_level must be debug, info, warn or error, got %q", ErrInvalid, s)
}

// Package config loads blindtimer settings from .blindtimer.json, the
// environment and YAML structure files.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileName is the per-directory config file
const FileName = ".blindtimer.json"

// Config represents the full blindtimer configuration
type Config struct {
	Timer     TimerConfig     `json:"timer"`
	Sound     SoundConfig     `json:"sound"`
	WakeLock  WakeLockConfig  `json:"wakeLock"`
	Generator GeneratorConfig `json:"generator"`
	Structure StructureConfig `json:"structure"`
	Logging   LoggingConfig   `json:"logging"`
}

// TimerConfig contains countdown settings
type TimerConfig struct {
	WarningSeconds int `json:"warningSeconds"`
	TickMillis     int `json:"tickMillis"`
}

// SoundConfig contains notification settings
type SoundConfig struct {
	Enabled bool `json:"enabled"`
}

// WakeLockConfig contains display sleep inhibition settings
type WakeLockConfig struct {
	Enabled bool `json:"enabled"`
}

// GeneratorConfig contains structure generator settings and form defaults
type GeneratorConfig struct {
	Model          string  `json:"model"`
	BaseURL        string  `json:"baseURL"`
	TimeoutSeconds int     `json:"timeoutSeconds"`
	Players        int     `json:"players"`
	DurationHours  float64 `json:"durationHours"`
	StartingChips  int     `json:"startingChips"`
}

// StructureConfig points at an optional YAML structure loaded at startup
type StructureConfig struct {
	File string `json:"file"`
}

// LoggingConfig contains log output settings
type LoggingConfig struct {
	Dir   string `json:"dir"`
	Level string `json:"level"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Timer: TimerConfig{
			WarningSeconds: 60,
			TickMillis:     1000,
		},
		Sound: SoundConfig{
			Enabled: true,
		},
		WakeLock: WakeLockConfig{
			Enabled: true,
		},
		Generator: GeneratorConfig{
			Model:          "gemini-2.5-flash",
			BaseURL:        "https://generativelanguage.googleapis.com/v1beta",
			TimeoutSeconds: 60,
			Players:        6,
			DurationHours:  2,
			StartingChips:  5000,
		},
		Logging: LoggingConfig{
			Dir:   filepath.Join(homeDir, ".blindtimer", "logs"),
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from dir with priority:
// 1. .blindtimer.json in dir
// 2. config.json in the user config directory (~/.config/blindtimer)
// 3. Defaults
// A relative structure file is resolved against the directory of the
// config file that named it.
func LoadConfig(dir string) (*Config, error) {
	candidates := []string{filepath.Join(dir, FileName)}
	if userPath, err := UserConfigPath(); err == nil {
		candidates = append(candidates, userPath)
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg, err := ParseVersionedConfig(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if cfg.Structure.File != "" && !filepath.IsAbs(cfg.Structure.File) {
			cfg.Structure.File = filepath.Join(filepath.Dir(path), cfg.Structure.File)
		}
		return MergeWithDefaults(cfg), nil
	}

	return DefaultConfig(), nil
}

// UserConfigPath returns the per-user config file location
func UserConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "blindtimer", "config.json"), nil
}

// SaveConfig saves configuration to the specified path with version information
func SaveConfig(cfg *Config, path string) error {
	data, err := MarshalVersionedConfig(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeWithDefaults fills in missing or out-of-range values with defaults
func MergeWithDefaults(cfg *Config) *Config {
	defaults := DefaultConfig()

	if cfg.Timer.WarningSeconds <= 0 {
		cfg.Timer.WarningSeconds = defaults.Timer.WarningSeconds
	}
	if cfg.Timer.TickMillis <= 0 {
		cfg.Timer.TickMillis = defaults.Timer.TickMillis
	}

	if cfg.Generator.Model == "" {
		cfg.Generator.Model = defaults.Generator.Model
	}
	if cfg.Generator.BaseURL == "" {
		cfg.Generator.BaseURL = defaults.Generator.BaseURL
	}
	if cfg.Generator.TimeoutSeconds <= 0 {
		cfg.Generator.TimeoutSeconds = defaults.Generator.TimeoutSeconds
	}
	if cfg.Generator.Players <= 0 {
		cfg.Generator.Players = defaults.Generator.Players
	}
	if cfg.Generator.DurationHours <= 0 {
		cfg.Generator.DurationHours = defaults.Generator.DurationHours
	}
	if cfg.Generator.StartingChips <= 0 {
		cfg.Generator.StartingChips = defaults.Generator.StartingChips
	}

	if cfg.Logging.Dir == "" {
		cfg.Logging.Dir = defaults.Logging.Dir
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaults.Logging.Level
	}

	return cfg
}

// TickPeriod returns the clock period
func (c *Config) TickPeriod() time.Duration {
	return time.Duration(c.Timer.TickMillis) * time.Millisecond
}

// GeneratorTimeout returns the deadline for one generation request
func (c *Config) GeneratorTimeout() time.Duration {
	return time.Duration(c.Generator.TimeoutSeconds) * time.Second
}

// LogLevel parses the configured level, defaulting to info
func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Logging.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogPath returns the log file location
func (c *Config) LogPath() string {
	return filepath.Join(c.Logging.Dir, "blindtimer.log")
}

// Load is a convenience function that loads config from current directory
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return LoadConfig(cwd)
}

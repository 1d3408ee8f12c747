// Package config resolves process-level settings: where the database and
// log live, how alerts are raised, and the timer durations used to seed an
// empty database.
//
// Resolution order is defaults, then the YAML file, then POMO_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/alexanderramin/pomo/internal/domain"
	"gopkg.in/yaml.v3"
)

const (
	appDir         = ".pomo"
	configFileName = "config.yaml"
)

// Config holds all process configuration.
type Config struct {
	ConfigPath    string
	DBPath        string
	LogFile       string
	LogLevel      string
	SettleDelay   time.Duration
	Bell          bool
	DesktopNotify bool

	// Timer seeds the settings table the first time pomo runs. Later
	// changes go through `pomo config set`.
	Timer domain.Settings
}

// Default returns the configuration used when no file or environment
// overrides exist. home is the user's home directory.
func Default(home string) Config {
	base := filepath.Join(home, appDir)
	return Config{
		ConfigPath:    filepath.Join(base, configFileName),
		DBPath:        filepath.Join(base, "pomo.db"),
		LogFile:       filepath.Join(base, "pomo.log"),
		LogLevel:      "info",
		SettleDelay:   time.Second,
		Bell:          true,
		DesktopNotify: true,
		Timer:         domain.DefaultSettings(),
	}
}

type yamlTimer struct {
	FocusMinutes      int `yaml:"focus_minutes"`
	ShortBreakMinutes int `yaml:"short_break_minutes"`
	LongBreakMinutes  int `yaml:"long_break_minutes"`
	LongBreakInterval int `yaml:"long_break_interval"`
}

type yamlConfig struct {
	DB            string    `yaml:"db"`
	LogFile       string    `yaml:"log_file"`
	LogLevel      string    `yaml:"log_level"`
	SettleDelayMs *int      `yaml:"settle_delay_ms"`
	Bell          *bool     `yaml:"bell"`
	DesktopNotify *bool     `yaml:"desktop_notify"`
	Timer         yamlTimer `yaml:"timer"`
}

// Load resolves the configuration for the current user.
func Load() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("finding home directory: %w", err)
	}
	return LoadFrom(home)
}

// LoadFrom resolves the configuration relative to home. A missing config
// file is not an error.
func LoadFrom(home string) (Config, error) {
	cfg := Default(home)
	if v := os.Getenv("POMO_CONFIG"); v != "" {
		cfg.ConfigPath = v
	}

	if err := applyFile(&cfg, cfg.ConfigPath); err != nil {
		return cfg, err
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	var file yamlConfig
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}

	if file.DB != "" {
		cfg.DBPath = file.DB
	}
	if file.LogFile != "" {
		cfg.LogFile = file.LogFile
	}
	if file.LogLevel != "" {
		cfg.LogLevel = file.LogLevel
	}
	if file.SettleDelayMs != nil && *file.SettleDelayMs >= 0 {
		cfg.SettleDelay = time.Duration(*file.SettleDelayMs) * time.Millisecond
	}
	if file.Bell != nil {
		cfg.Bell = *file.Bell
	}
	if file.DesktopNotify != nil {
		cfg.DesktopNotify = *file.DesktopNotify
	}

	// Out of range timer values keep their defaults; the settings service
	// rejects them anyway.
	if file.Timer.FocusMinutes > 0 {
		cfg.Timer.FocusMinutes = file.Timer.FocusMinutes
	}
	if file.Timer.ShortBreakMinutes > 0 {
		cfg.Timer.ShortBreakMinutes = file.Timer.ShortBreakMinutes
	}
	if file.Timer.LongBreakMinutes > 0 {
		cfg.Timer.LongBreakMinutes = file.Timer.LongBreakMinutes
	}
	if file.Timer.LongBreakInterval > 0 {
		cfg.Timer.LongBreakInterval = file.Timer.LongBreakInterval
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("POMO_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("POMO_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("POMO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("POMO_SETTLE_DELAY_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.SettleDelay = time.Duration(n) * time.Millisecond
		}
	}
	if v := os.Getenv("POMO_BELL"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Bell = b
		}
	}
	if v := os.Getenv("POMO_DESKTOP_NOTIFY"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.DesktopNotify = b
		}
	}
}

// Write stores the timer seed and alert switches in the config file,
// creating its directory if needed.
func Write(cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(cfg.ConfigPath), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	settle := int(cfg.SettleDelay / time.Millisecond)
	file := yamlConfig{
		LogLevel:      cfg.LogLevel,
		SettleDelayMs: &settle,
		Bell:          &cfg.Bell,
		DesktopNotify: &cfg.DesktopNotify,
		Timer: yamlTimer{
			FocusMinutes:      cfg.Timer.FocusMinutes,
			ShortBreakMinutes: cfg.Timer.ShortBreakMinutes,
			LongBreakMinutes:  cfg.Timer.LongBreakMinutes,
			LongBreakInterval: cfg.Timer.LongBreakInterval,
		},
	}
	out, err := yaml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(cfg.ConfigPath, out, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

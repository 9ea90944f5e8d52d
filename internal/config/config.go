// Package config loads clinicdesk settings from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const envPrefix = "CLINICDESK"

type Config struct {
	DBPath        string              `mapstructure:"db_path" yaml:"db_path"`
	Log           LogConfig           `mapstructure:"log" yaml:"log"`
	Schedule      ScheduleConfig      `mapstructure:"schedule" yaml:"schedule"`
	Notifications NotificationsConfig `mapstructure:"notifications" yaml:"notifications"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	File   string `mapstructure:"file" yaml:"file"`
}

type ScheduleConfig struct {
	ResetHour    int           `mapstructure:"reset_hour" yaml:"reset_hour"`
	ReminderHour int           `mapstructure:"reminder_hour" yaml:"reminder_hour"`
	Interval     time.Duration `mapstructure:"interval" yaml:"interval"`
}

type NotificationsConfig struct {
	Backend string `mapstructure:"backend" yaml:"backend"` // desktop, none
}

// Default returns the built-in configuration. Paths live under the user
// config directory.
func Default() *Config {
	dir := Dir()
	return &Config{
		DBPath: filepath.Join(dir, "clinicdesk.db"),
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			File:   filepath.Join(dir, "clinicdesk.log"),
		},
		Schedule: ScheduleConfig{
			ResetHour:    20,
			ReminderHour: 8,
			Interval:     time.Minute,
		},
		Notifications: NotificationsConfig{Backend: "desktop"},
	}
}

// Dir is ~/.config/clinicdesk (or the platform equivalent).
func Dir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "clinicdesk")
}

// DefaultPath is the config file read when no path is given.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Load reads path (DefaultPath when empty) over the defaults. A missing
// file is not an error. CLINICDESK_* variables override the file, e.g.
// CLINICDESK_SCHEDULE_RESET_HOUR=19.
func Load(path string) (*Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, cfg)

	if path == "" {
		path = DefaultPath()
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can see it during Unmarshal.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("db_path", cfg.DBPath)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("schedule.reset_hour", cfg.Schedule.ResetHour)
	v.SetDefault("schedule.reminder_hour", cfg.Schedule.ReminderHour)
	v.SetDefault("schedule.interval", cfg.Schedule.Interval)
	v.SetDefault("notifications.backend", cfg.Notifications.Backend)
}

func isNotExist(err error) bool {
	var nf viper.ConfigFileNotFoundError
	return errors.As(err, &nf) || errors.Is(err, os.ErrNotExist)
}

func (c *Config) Validate() error {
	if c.Schedule.ResetHour < 0 || c.Schedule.ResetHour > 23 {
		return fmt.Errorf("schedule.reset_hour must be 0-23, got %d", c.Schedule.ResetHour)
	}
	if c.Schedule.ReminderHour < 0 || c.Schedule.ReminderHour > 23 {
		return fmt.Errorf("schedule.reminder_hour must be 0-23, got %d", c.Schedule.ReminderHour)
	}
	if c.Schedule.Interval <= 0 {
		return fmt.Errorf("schedule.interval must be positive, got %s", c.Schedule.Interval)
	}
	switch c.Notifications.Backend {
	case "desktop", "none":
	default:
		return fmt.Errorf("notifications.backend must be desktop or none, got %q", c.Notifications.Backend)
	}
	if c.DBPath == "" {
		return errors.New("db_path must not be empty")
	}
	return nil
}

// Write saves cfg as YAML to path, creating the directory.
func (c *Config) Write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Config represents application configuration
type Config struct {
	Calendar CalendarConfig `mapstructure:"calendar"`
	Daemon   DaemonConfig   `mapstructure:"daemon"`
}

// CalendarConfig represents calendar configuration
type CalendarConfig struct {
	OverridesFile string `mapstructure:"overrides_file"` // Optional file with officially announced dates
	WorkingHours  int    `mapstructure:"working_hours"`
}

// DaemonConfig represents daemon mode configuration
type DaemonConfig struct {
	DailyTime  string `mapstructure:"daily_time"` // Time to run the daily check (HH:MM, local time)
	LogFile    string `mapstructure:"log_file"`
	LogLevel   string `mapstructure:"log_level"`
	SystemTray bool   `mapstructure:"system_tray"` // Show system tray icon (Windows only)
}

// Load loads configuration from file. With an empty configPath the usual
// locations are searched and a missing file means defaults; an explicit path
// must exist.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("calendar.overrides_file", "")
	v.SetDefault("calendar.working_hours", 8)
	v.SetDefault("daemon.daily_time", "08:00")
	v.SetDefault("daemon.log_file", "")
	v.SetDefault("daemon.log_level", "info")
	v.SetDefault("daemon.system_tray", false)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.holiday-checker")
		v.AddConfigPath("/etc/holiday-checker")
	}

	// Read environment variables, e.g. HOLIDAY_CHECKER_DAEMON_LOG_LEVEL
	v.SetEnvPrefix("holiday_checker")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.ExpandEnvVars()

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Calendar.WorkingHours < 1 || c.Calendar.WorkingHours > 24 {
		return fmt.Errorf("calendar.working_hours must be between 1 and 24, got %d", c.Calendar.WorkingHours)
	}

	if c.Daemon.DailyTime != "" {
		if _, _, err := parseDailyTime(c.Daemon.DailyTime); err != nil {
			return fmt.Errorf("daemon.daily_time: %w", err)
		}
	}

	if c.Daemon.LogLevel != "" {
		var level zapcore.Level
		if err := level.UnmarshalText([]byte(c.Daemon.LogLevel)); err != nil {
			return fmt.Errorf("daemon.log_level: %w", err)
		}
	}

	return nil
}

// GetDailyTime returns the configured daily check time (local time)
// Returns hour and minute (0-23, 0-59). Default: 08:00
func (c *DaemonConfig) GetDailyTime() (hour, minute int) {
	h, m, err := parseDailyTime(c.DailyTime)
	if err != nil {
		return 8, 0
	}
	return h, m
}

// GetLogLevel returns the configured log level, info if unset or invalid
func (c *DaemonConfig) GetLogLevel() zapcore.Level {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return zapcore.InfoLevel
	}
	return level
}

func parseDailyTime(s string) (hour, minute int, err error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, 0, fmt.Errorf("expected HH:MM, got %q", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("time out of range: %q", s)
	}
	return h, m, nil
}

// ExpandEnvVars expands environment variables in config strings
func (c *Config) ExpandEnvVars() {
	c.Calendar.OverridesFile = os.ExpandEnv(c.Calendar.OverridesFile)
	c.Daemon.LogFile = os.ExpandEnv(c.Daemon.LogFile)
}

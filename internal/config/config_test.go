package config

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zapcore"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad_File(t *testing.T) {
	t.Setenv("OVERRIDES_DIR", "/srv/holidays")

	path := writeConfig(t, `
calendar:
  overrides_file: "$OVERRIDES_DIR/tr.txt"
  working_hours: 7
daemon:
  daily_time: "09:30"
  log_level: debug
  system_tray: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Calendar.OverridesFile != "/srv/holidays/tr.txt" {
		t.Errorf("OverridesFile = %q, want expanded path", cfg.Calendar.OverridesFile)
	}
	if cfg.Calendar.WorkingHours != 7 {
		t.Errorf("WorkingHours = %d, want 7", cfg.Calendar.WorkingHours)
	}
	if h, m := cfg.Daemon.GetDailyTime(); h != 9 || m != 30 {
		t.Errorf("GetDailyTime() = %d:%d, want 9:30", h, m)
	}
	if cfg.Daemon.GetLogLevel() != zapcore.DebugLevel {
		t.Errorf("GetLogLevel() = %v, want debug", cfg.Daemon.GetLogLevel())
	}
	if !cfg.Daemon.SystemTray {
		t.Error("SystemTray = false, want true")
	}
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Calendar.WorkingHours != 8 {
		t.Errorf("WorkingHours = %d, want 8", cfg.Calendar.WorkingHours)
	}
	if h, m := cfg.Daemon.GetDailyTime(); h != 8 || m != 0 {
		t.Errorf("GetDailyTime() = %d:%d, want 8:00", h, m)
	}
	if cfg.Calendar.OverridesFile != "" {
		t.Errorf("OverridesFile = %q, want empty", cfg.Calendar.OverridesFile)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("HOLIDAY_CHECKER_DAEMON_LOG_LEVEL", "warn")
	path := writeConfig(t, "daemon:\n  log_level: debug\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Daemon.GetLogLevel() != zapcore.WarnLevel {
		t.Errorf("GetLogLevel() = %v, want warn", cfg.Daemon.GetLogLevel())
	}
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() expected error for missing explicit file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"Valid", Config{Calendar: CalendarConfig{WorkingHours: 8}, Daemon: DaemonConfig{DailyTime: "20:00", LogLevel: "info"}}, false},
		{"Zero working hours", Config{Calendar: CalendarConfig{WorkingHours: 0}}, true},
		{"Too many working hours", Config{Calendar: CalendarConfig{WorkingHours: 25}}, true},
		{"Bad daily time", Config{Calendar: CalendarConfig{WorkingHours: 8}, Daemon: DaemonConfig{DailyTime: "25:00"}}, true},
		{"Unparseable daily time", Config{Calendar: CalendarConfig{WorkingHours: 8}, Daemon: DaemonConfig{DailyTime: "noon"}}, true},
		{"Bad log level", Config{Calendar: CalendarConfig{WorkingHours: 8}, Daemon: DaemonConfig{LogLevel: "loud"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetDailyTime_Fallback(t *testing.T) {
	c := DaemonConfig{DailyTime: "garbage"}

	if h, m := c.GetDailyTime(); h != 8 || m != 0 {
		t.Errorf("GetDailyTime() = %d:%d, want 8:00", h, m)
	}
}

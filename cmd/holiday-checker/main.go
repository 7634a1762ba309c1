package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/username/holiday-checker/internal/calendar"
	"github.com/username/holiday-checker/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	configPath string
	appConfig  *config.Config
	logger     = zap.NewNop()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "holiday-checker",
		Short:        "Turkish public holiday calculator",
		Long:         "Compute Turkish public holidays, including the approximated religious holidays, and check whether today is a day off",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				initLogger(zapcore.InfoLevel)
				return fmt.Errorf("failed to load config: %w", err)
			}
			appConfig = cfg

			if cfg.Daemon.LogFile != "" {
				logger = initFileLogger(cfg.Daemon.LogFile, cfg.Daemon.GetLogLevel())
			} else {
				initLogger(cfg.Daemon.GetLogLevel())
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default: search ./, ~/.holiday-checker, /etc/holiday-checker)")

	rootCmd.AddCommand(
		holidaysCmd(),
		religiousCmd(),
		dayOffCmd(),
		monthCmd(),
		daemonCmd(),
	)

	return rootCmd
}

// initializeCalendar builds the computed calendar, layered under the
// overrides file when one is configured
func initializeCalendar(cfg *config.Config) calendar.Calendar {
	computed := calendar.NewHolidayCalendar(cfg.Calendar.WorkingHours, logger)

	if cfg.Calendar.OverridesFile == "" {
		logger.Debug("Using computed holiday calendar")
		return computed
	}

	overrides := calendar.NewFileCalendar(cfg.Calendar.OverridesFile, logger)
	composite := calendar.NewCompositeCalendar(overrides, computed, logger)

	if err := composite.LoadPrimary(); err != nil {
		logger.Warn("Failed to load calendar overrides, continuing with computed calendar",
			zap.String("file", cfg.Calendar.OverridesFile),
			zap.Error(err))
		return computed
	}

	return composite
}

func initLogger(level zapcore.Level) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level zapcore.Level) *zap.Logger {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100,  // MB
		MaxBackups: 3,    // Keep max 3 old log files
		MaxAge:     28,   // days
		Compress:   true, // Compress old logs with gzip
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		level,
	)

	return zap.New(core)
}

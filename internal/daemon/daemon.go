package daemon

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/username/holiday-checker/internal/calendar"
	"github.com/username/holiday-checker/pkg/dateutil"
	"go.uber.org/zap"
)

// ErrCheckInProgress is returned when a check is requested while another one runs
var ErrCheckInProgress = errors.New("check already in progress")

// CheckResult is the outcome of one daily check
type CheckResult struct {
	Date      time.Time
	DayOff    bool
	Day       *calendar.DayInfo
	CheckedAt time.Time
}

// Daemon represents the daemon process
type Daemon struct {
	checker     *calendar.Checker
	calendar    calendar.Calendar
	dailyHour   int  // Hour to run the daily check (0-23)
	dailyMinute int  // Minute to run the daily check (0-59)
	systemTray  bool // Show system tray icon
	logger      *zap.Logger
	ctx         context.Context
	cancel      context.CancelFunc
	trayApp     *TrayApp

	runMu      sync.Mutex   // Held for the duration of a check
	mu         sync.RWMutex // Protects the fields below
	lastRun    string       // Date of the last successful check, YYYY-MM-DD
	lastResult *CheckResult
}

// NewDaemon creates a new daemon instance with daily schedule
func NewDaemon(checker *calendar.Checker, cal calendar.Calendar, dailyHour, dailyMinute int, systemTray bool, logger *zap.Logger) *Daemon {
	ctx, cancel := context.WithCancel(context.Background())

	return &Daemon{
		checker:     checker,
		calendar:    cal,
		dailyHour:   dailyHour,
		dailyMinute: dailyMinute,
		systemTray:  systemTray,
		logger:      logger,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start starts the daemon and blocks until it stops
func (d *Daemon) Start() error {
	if d.systemTray {
		d.logger.Info("Initializing system tray")
		trayApp, err := NewTrayApp(d, d.logger)
		if err != nil {
			d.logger.Warn("Failed to initialize system tray", zap.Error(err))
			d.runScheduledLogic()
			return nil
		}
		d.trayApp = trayApp
		// Run tray (blocks until Quit)
		d.trayApp.Run()
		return nil
	}

	d.logger.Info("Running without system tray")
	d.runScheduledLogic()
	return nil
}

// runScheduledLogic runs the scheduled check loop (called from tray or standalone)
func (d *Daemon) runScheduledLogic() {
	d.logger.Info("Daemon scheduled logic started",
		zap.Int("daily_hour", d.dailyHour),
		zap.Int("daily_minute", d.dailyMinute))

	// Run immediately if the scheduled time already passed today
	now := d.checker.Now()
	if now.After(d.scheduledOn(now)) {
		d.logger.Info("Scheduled time already passed today, checking now",
			zap.Time("current_time", now))
		d.runAndNotify(false)
	}

	nextRun := d.calculateNextRun(now)
	d.logger.Info("Next check scheduled",
		zap.Time("next_run", nextRun),
		zap.Duration("wait_duration", nextRun.Sub(now)))

	// Setup signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	// Check every minute if it's time to run
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-d.ctx.Done():
			d.logger.Info("Daemon stopped")
			if d.trayApp != nil {
				d.trayApp.Stop()
			}
			return

		case sig := <-sigChan:
			d.logger.Info("Received signal, shutting down",
				zap.String("signal", sig.String()))
			if d.trayApp != nil {
				d.trayApp.Stop()
			}
			d.Stop()
			return

		case <-ticker.C:
			now := d.checker.Now()
			if !d.shouldRunAt(now) {
				continue
			}

			d.logger.Info("Starting scheduled check", zap.Time("time", now))
			d.runAndNotify(false)

			nextRun = d.calculateNextRun(now)
			d.logger.Info("Next check scheduled",
				zap.Time("next_run", nextRun),
				zap.Duration("wait_duration", nextRun.Sub(now)))
		}
	}
}

// Stop stops the daemon
func (d *Daemon) Stop() {
	d.cancel()
}

// CheckNow runs a check immediately, even if today was already checked
func (d *Daemon) CheckNow() {
	d.logger.Info("Manual check triggered")
	d.runAndNotify(true)
}

func (d *Daemon) runAndNotify(force bool) {
	result, err := d.runCheck(force)
	if err != nil {
		d.logger.Error("Check failed", zap.Error(err))
		if d.trayApp != nil {
			d.trayApp.ShowNotification("Check Failed", fmt.Sprintf("Error: %v", err))
		}
		return
	}

	if d.trayApp != nil {
		d.trayApp.SetStatus(describe(result))
		d.trayApp.ShowNotification(dateutil.FormatDate(result.Date), describe(result))
	}
}

// runCheck evaluates today once per date unless forced.
// Concurrent calls are rejected with ErrCheckInProgress.
func (d *Daemon) runCheck(force bool) (*CheckResult, error) {
	if !d.runMu.TryLock() {
		d.logger.Warn("Check already running, skipping concurrent execution")
		return nil, ErrCheckInProgress
	}
	defer d.runMu.Unlock()

	today := d.checker.Today()
	todayStr := dateutil.FormatDate(today)

	d.mu.RLock()
	lastRun, lastResult := d.lastRun, d.lastResult
	d.mu.RUnlock()

	if !force && lastRun == todayStr {
		d.logger.Debug("Already checked today, skipping",
			zap.String("last_run_date", lastRun))
		return lastResult, nil
	}

	dayInfo, err := d.calendar.GetDayInfo(today)
	if err != nil {
		return nil, fmt.Errorf("failed to get day info: %w", err)
	}

	result := &CheckResult{
		Date:      today,
		DayOff:    d.checker.IsDayOff(),
		Day:       dayInfo,
		CheckedAt: d.checker.Now(),
	}

	d.logger.Info("Day checked",
		zap.String("date", todayStr),
		zap.Bool("day_off", result.DayOff),
		zap.Stringer("calendar_type", dayInfo.Type),
		zap.Int("working_hours", dayInfo.WorkingHours),
		zap.String("note", dayInfo.Note))

	d.mu.Lock()
	d.lastRun = todayStr
	d.lastResult = result
	d.mu.Unlock()

	return result, nil
}

// Status returns daemon status
func (d *Daemon) Status() map[string]interface{} {
	now := d.checker.Now()

	status := map[string]interface{}{
		"running":  d.ctx.Err() == nil,
		"next_run": d.calculateNextRun(now).Format(time.RFC3339),
	}

	d.mu.RLock()
	result := d.lastResult
	d.mu.RUnlock()

	if result != nil {
		status["last_check"] = map[string]interface{}{
			"date":          dateutil.FormatDate(result.Date),
			"day_off":       result.DayOff,
			"calendar_type": result.Day.Type.String(),
			"working_hours": result.Day.WorkingHours,
			"note":          result.Day.Note,
			"checked_at":    result.CheckedAt.Format(time.RFC3339),
		}
	}

	return status
}

// scheduledOn returns the scheduled time on the day of now, in now's location
func (d *Daemon) scheduledOn(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(),
		d.dailyHour, d.dailyMinute, 0, 0, now.Location())
}

// calculateNextRun calculates the next scheduled run time
func (d *Daemon) calculateNextRun(now time.Time) time.Time {
	today := d.scheduledOn(now)

	// If target time already passed today, schedule for tomorrow
	if !now.Before(today) {
		return today.AddDate(0, 0, 1)
	}

	return today
}

// shouldRunAt checks if the check should run at the given time
func (d *Daemon) shouldRunAt(now time.Time) bool {
	// Within the scheduled minute
	return now.Hour() == d.dailyHour && now.Minute() == d.dailyMinute
}

func describe(result *CheckResult) string {
	if !result.DayOff {
		return fmt.Sprintf("Workday (%dh)", result.Day.WorkingHours)
	}
	if result.Day.Note != "" {
		return "Day off: " + result.Day.Note
	}
	return "Day off"
}

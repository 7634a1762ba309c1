package daemon

import (
	"errors"
	"runtime"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/username/holiday-checker/internal/calendar"
)

type brokenCalendar struct{}

func (brokenCalendar) IsWorkday(time.Time) (bool, int, error) { return false, 0, errors.New("broken") }
func (brokenCalendar) GetMonthInfo(int, time.Month) (*calendar.MonthInfo, error) {
	return nil, errors.New("broken")
}
func (brokenCalendar) GetDayInfo(time.Time) (*calendar.DayInfo, error) {
	return nil, errors.New("broken")
}

func newTestDaemon(t *testing.T, now time.Time, cal calendar.Calendar) *Daemon {
	t.Helper()

	logger := zaptest.NewLogger(t)
	checker := calendar.NewChecker(
		calendar.WithClock(func() time.Time { return now }),
		calendar.WithLogger(logger),
	)
	if cal == nil {
		cal = calendar.NewHolidayCalendar(8, logger)
	}
	return NewDaemon(checker, cal, 8, 30, false, logger)
}

func TestDaemon_ShouldRunAt(t *testing.T) {
	d := newTestDaemon(t, time.Now(), nil)

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"Exact minute", time.Date(2024, 4, 23, 8, 30, 0, 0, time.UTC), true},
		{"Late in the minute", time.Date(2024, 4, 23, 8, 30, 59, 0, time.UTC), true},
		{"Minute before", time.Date(2024, 4, 23, 8, 29, 59, 0, time.UTC), false},
		{"Minute after", time.Date(2024, 4, 23, 8, 31, 0, 0, time.UTC), false},
		{"Other hour", time.Date(2024, 4, 23, 20, 30, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.shouldRunAt(tt.now); got != tt.want {
				t.Errorf("shouldRunAt(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

func TestDaemon_CalculateNextRun(t *testing.T) {
	d := newTestDaemon(t, time.Now(), nil)

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{"Before schedule", time.Date(2024, 4, 23, 7, 0, 0, 0, time.UTC), time.Date(2024, 4, 23, 8, 30, 0, 0, time.UTC)},
		{"At schedule", time.Date(2024, 4, 23, 8, 30, 0, 0, time.UTC), time.Date(2024, 4, 24, 8, 30, 0, 0, time.UTC)},
		{"After schedule", time.Date(2024, 4, 23, 22, 0, 0, 0, time.UTC), time.Date(2024, 4, 24, 8, 30, 0, 0, time.UTC)},
		{"Month boundary", time.Date(2024, 4, 30, 9, 0, 0, 0, time.UTC), time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.calculateNextRun(tt.now); !got.Equal(tt.want) {
				t.Errorf("calculateNextRun(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

func TestDaemon_RunCheck(t *testing.T) {
	d := newTestDaemon(t, time.Date(2024, 4, 23, 9, 0, 0, 0, time.UTC), nil)

	result, err := d.runCheck(false)
	if err != nil {
		t.Fatalf("runCheck() error = %v", err)
	}

	if !result.DayOff {
		t.Error("DayOff = false on National Sovereignty and Children's Day")
	}
	if result.Day.Type != calendar.DayTypeHoliday {
		t.Errorf("Day.Type = %v, want holiday", result.Day.Type)
	}

	again, err := d.runCheck(false)
	if err != nil {
		t.Fatalf("second runCheck() error = %v", err)
	}
	if again != result {
		t.Error("second runCheck() on the same date should reuse the stored result")
	}

	forced, err := d.runCheck(true)
	if err != nil {
		t.Fatalf("forced runCheck() error = %v", err)
	}
	if forced == result {
		t.Error("forced runCheck() should evaluate again")
	}
}

func TestDaemon_RunCheck_Workday(t *testing.T) {
	d := newTestDaemon(t, time.Date(2024, 4, 24, 9, 0, 0, 0, time.UTC), nil)

	result, err := d.runCheck(false)
	if err != nil {
		t.Fatalf("runCheck() error = %v", err)
	}
	if result.DayOff || !result.Day.IsWorkday {
		t.Errorf("result = %+v, want a workday", result)
	}
	if got := describe(result); got != "Workday (8h)" {
		t.Errorf("describe() = %q", got)
	}
}

func TestDaemon_RunCheck_CalendarError(t *testing.T) {
	d := newTestDaemon(t, time.Date(2024, 4, 24, 9, 0, 0, 0, time.UTC), brokenCalendar{})

	if _, err := d.runCheck(false); err == nil {
		t.Fatal("runCheck() expected error, got nil")
	}
	if d.Status()["last_check"] != nil {
		t.Error("failed check should not be stored")
	}
}

func TestDaemon_RunCheck_Concurrent(t *testing.T) {
	d := newTestDaemon(t, time.Date(2024, 4, 24, 9, 0, 0, 0, time.UTC), nil)

	d.runMu.Lock()
	_, err := d.runCheck(true)
	d.runMu.Unlock()

	if !errors.Is(err, ErrCheckInProgress) {
		t.Errorf("runCheck() error = %v, want ErrCheckInProgress", err)
	}
}

func TestDaemon_Status(t *testing.T) {
	d := newTestDaemon(t, time.Date(2024, 10, 29, 9, 0, 0, 0, time.UTC), nil)
	d.CheckNow()

	status := d.Status()

	if status["running"] != true {
		t.Errorf("running = %v, want true", status["running"])
	}
	if status["next_run"] != "2024-10-30T08:30:00Z" {
		t.Errorf("next_run = %v", status["next_run"])
	}

	last, ok := status["last_check"].(map[string]interface{})
	if !ok {
		t.Fatalf("last_check missing from status: %v", status)
	}
	if last["date"] != "2024-10-29" || last["day_off"] != true || last["note"] != "Republic Day" {
		t.Errorf("last_check = %v", last)
	}

	d.Stop()
	if d.Status()["running"] != false {
		t.Error("running = true after Stop()")
	}
}

func TestDaemon_StartStop(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("system tray would be started on Windows")
	}

	// Scheduled time already passed, so Start runs a check before looping.
	d := newTestDaemon(t, time.Date(2024, 4, 23, 9, 0, 0, 0, time.UTC), nil)
	d.systemTray = true
	d.logger = zap.NewNop()

	done := make(chan error, 1)
	go func() { done <- d.Start() }()

	deadline := time.After(5 * time.Second)
	for d.Status()["last_check"] == nil {
		select {
		case <-deadline:
			t.Fatal("initial check did not run")
		case <-time.After(10 * time.Millisecond):
		}
	}

	d.Stop()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Start() did not return after Stop()")
	}
}

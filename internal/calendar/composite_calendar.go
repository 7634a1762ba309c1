package calendar

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// CompositeCalendar implements Calendar with fallback strategy
// Primary: FileCalendar (announced dates)
// Fallback: HolidayCalendar (computed)
type CompositeCalendar struct {
	primary  Calendar
	fallback Calendar
	logger   *zap.Logger
}

// NewCompositeCalendar creates a new CompositeCalendar
func NewCompositeCalendar(primary, fallback Calendar, logger *zap.Logger) *CompositeCalendar {
	return &CompositeCalendar{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// IsWorkday checks if the given date is a working day
func (cc *CompositeCalendar) IsWorkday(date time.Time) (bool, int, error) {
	dayInfo, err := cc.GetDayInfo(date)
	if err != nil {
		return false, 0, err
	}

	return dayInfo.IsWorkday, dayInfo.WorkingHours, nil
}

// GetMonthInfo returns the fallback month with every day the primary knows
// about replaced by the primary's entry
func (cc *CompositeCalendar) GetMonthInfo(year int, month time.Month) (*MonthInfo, error) {
	base, err := cc.fallback.GetMonthInfo(year, month)
	if err != nil {
		return nil, fmt.Errorf("fallback calendar failed: %w", err)
	}

	days := make([]DayInfo, len(base.Days))
	overridden := 0
	for i, day := range base.Days {
		days[i] = day
		if override, ok := cc.lookupPrimary(day.Date); ok {
			days[i] = *override
			overridden++
		}
	}

	if overridden > 0 {
		cc.logger.Debug("Applied calendar overrides",
			zap.Int("year", year),
			zap.Int("month", int(month)),
			zap.Int("days", overridden))
	}

	return newMonthInfo(year, month, days), nil
}

// GetDayInfo returns detailed info for a specific day
func (cc *CompositeCalendar) GetDayInfo(date time.Time) (*DayInfo, error) {
	if dayInfo, ok := cc.lookupPrimary(date); ok {
		return dayInfo, nil
	}

	return cc.fallback.GetDayInfo(date)
}

// lookupPrimary returns the primary's entry for date. A missing day is the
// normal case; any other failure is logged before falling back.
func (cc *CompositeCalendar) lookupPrimary(date time.Time) (*DayInfo, bool) {
	dayInfo, err := cc.primary.GetDayInfo(date)
	if err == nil {
		return dayInfo, true
	}

	if !errors.Is(err, ErrDayNotFound) && !errors.Is(err, ErrMonthNotFound) {
		cc.logger.Warn("Primary calendar failed, falling back to computed calendar",
			zap.Time("date", date),
			zap.Error(err))
	}

	return nil, false
}

// LoadPrimary loads the primary calendar (if FileCalendar)
func (cc *CompositeCalendar) LoadPrimary() error {
	if fc, ok := cc.primary.(*FileCalendar); ok {
		if err := fc.Load(); err != nil {
			return fmt.Errorf("failed to load calendar overrides: %w", err)
		}
		cc.logger.Info("Calendar overrides loaded successfully")
	}
	return nil
}

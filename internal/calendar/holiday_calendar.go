package calendar

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/username/holiday-checker/pkg/dateutil"
)

const defaultWorkingHours = 8

// HolidayCalendar implements Calendar interface from the computed Turkish holidays.
// A day is a holiday when it appears in the holiday list of its own Gregorian
// year, the same rule IsDayOff applies.
type HolidayCalendar struct {
	workingHours int
	logger       *zap.Logger
	cache        map[int]map[time.Time]string // year → holiday date → name
	cacheMu      sync.RWMutex
}

// NewHolidayCalendar creates a new HolidayCalendar instance
func NewHolidayCalendar(workingHours int, logger *zap.Logger) *HolidayCalendar {
	if workingHours <= 0 {
		workingHours = defaultWorkingHours
	}

	return &HolidayCalendar{
		workingHours: workingHours,
		logger:       logger,
		cache:        make(map[int]map[time.Time]string),
	}
}

// IsWorkday checks if the given date is a working day
func (hc *HolidayCalendar) IsWorkday(date time.Time) (bool, int, error) {
	dayInfo, err := hc.GetDayInfo(date)
	if err != nil {
		return false, 0, err
	}

	return dayInfo.IsWorkday, dayInfo.WorkingHours, nil
}

// GetDayInfo returns detailed info for a specific day
func (hc *HolidayCalendar) GetDayInfo(date time.Time) (*DayInfo, error) {
	day := dateutil.CivilDate(date)
	dayInfo := hc.dayInfo(day, hc.holidays(day.Year()))
	return &dayInfo, nil
}

// GetMonthInfo returns calendar info for the entire month
func (hc *HolidayCalendar) GetMonthInfo(year int, month time.Month) (*MonthInfo, error) {
	index := hc.holidays(year)
	daysInMonth := dateutil.DaysInMonth(year, month)

	days := make([]DayInfo, 0, daysInMonth)
	for d := 1; d <= daysInMonth; d++ {
		days = append(days, hc.dayInfo(dateutil.Date(year, month, d), index))
	}

	monthInfo := newMonthInfo(year, month, days)

	hc.logger.Debug("Month info computed",
		zap.Int("year", year),
		zap.Int("month", int(month)),
		zap.Int("holidays", monthInfo.Holidays),
		zap.Int("working_hours", monthInfo.WorkingHours))

	return monthInfo, nil
}

func (hc *HolidayCalendar) dayInfo(date time.Time, holidays map[time.Time]string) DayInfo {
	name, isHoliday := holidays[date]

	switch {
	case dateutil.IsWeekend(date):
		return DayInfo{Date: date, Type: DayTypeWeekend, Note: name}
	case isHoliday:
		return DayInfo{Date: date, Type: DayTypeHoliday, Note: name}
	default:
		return DayInfo{
			Date:         date,
			Type:         DayTypeWorkday,
			WorkingHours: hc.workingHours,
			IsWorkday:    true,
		}
	}
}

// holidays returns the holiday index of year, computing it on first use
func (hc *HolidayCalendar) holidays(year int) map[time.Time]string {
	hc.cacheMu.RLock()
	index, ok := hc.cache[year]
	hc.cacheMu.RUnlock()
	if ok {
		return index
	}

	index = holidayIndex(year)

	hc.cacheMu.Lock()
	hc.cache[year] = index
	hc.cacheMu.Unlock()

	hc.logger.Debug("Holiday index computed",
		zap.Int("year", year),
		zap.Int("dates", len(index)))

	return index
}

// ClearCache drops the computed holiday indexes
func (hc *HolidayCalendar) ClearCache() {
	hc.cacheMu.Lock()
	defer hc.cacheMu.Unlock()

	hc.cache = make(map[int]map[time.Time]string)
	hc.logger.Info("Holiday cache cleared")
}

// holidayIndex maps each holiday date of year to its name. The first name wins
// when two holidays share a date.
func holidayIndex(year int) map[time.Time]string {
	holidays := Holidays(year)
	index := make(map[time.Time]string, len(holidays))
	for _, h := range holidays {
		if _, ok := index[h.Date]; !ok {
			index[h.Date] = h.Name
		}
	}
	return index
}

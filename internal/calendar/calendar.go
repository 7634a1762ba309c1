package calendar

import (
	"errors"
	"time"
)

var (
	// ErrDayNotFound is returned when a calendar has no entry for the requested day
	ErrDayNotFound = errors.New("day not found in calendar")
	// ErrMonthNotFound is returned when a calendar has no entry for the requested month
	ErrMonthNotFound = errors.New("month not found in calendar")
)

// DayType represents the type of day
type DayType int

const (
	DayTypeWorkday DayType = iota + 1
	DayTypeWeekend
	DayTypeHoliday
	DayTypeShortened
)

func (t DayType) String() string {
	switch t {
	case DayTypeWorkday:
		return "workday"
	case DayTypeWeekend:
		return "weekend"
	case DayTypeHoliday:
		return "holiday"
	case DayTypeShortened:
		return "shortened"
	default:
		return "unknown"
	}
}

// ParseDayType parses the textual form produced by DayType.String
func ParseDayType(s string) (DayType, bool) {
	switch s {
	case "workday":
		return DayTypeWorkday, true
	case "weekend":
		return DayTypeWeekend, true
	case "holiday":
		return DayTypeHoliday, true
	case "shortened":
		return DayTypeShortened, true
	default:
		return 0, false
	}
}

// IsWorkType reports whether people work on days of this type
func (t DayType) IsWorkType() bool {
	return t == DayTypeWorkday || t == DayTypeShortened
}

// DayInfo represents information about a specific day
type DayInfo struct {
	Date         time.Time
	Type         DayType
	WorkingHours int
	IsWorkday    bool
	Note         string
}

// MonthInfo represents calendar information for a month
type MonthInfo struct {
	Year         int
	Month        time.Month
	WorkingHours int // Total working hours in the month
	WorkDays     int
	Weekends     int
	Holidays     int
	Days         []DayInfo
}

// newMonthInfo builds a MonthInfo and tallies its statistics from days
func newMonthInfo(year int, month time.Month, days []DayInfo) *MonthInfo {
	monthInfo := &MonthInfo{
		Year:  year,
		Month: month,
		Days:  days,
	}

	for _, day := range days {
		switch {
		case day.IsWorkday:
			monthInfo.WorkDays++
			monthInfo.WorkingHours += day.WorkingHours
		case day.Type == DayTypeWeekend:
			monthInfo.Weekends++
		case day.Type == DayTypeHoliday:
			monthInfo.Holidays++
		}
	}

	return monthInfo
}

// Calendar interface for checking working days
type Calendar interface {
	// IsWorkday checks if the given date is a working day
	IsWorkday(date time.Time) (bool, int, error)

	// GetMonthInfo returns calendar info for the entire month
	GetMonthInfo(year int, month time.Month) (*MonthInfo, error)

	// GetDayInfo returns detailed info for a specific day
	GetDayInfo(date time.Time) (*DayInfo, error)
}

package calendar

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/username/holiday-checker/pkg/dateutil"
)

// FileCalendar implements Calendar interface using a local text file.
// It holds only the days listed in the file, typically officially announced
// holiday dates that should override the computed ones.
type FileCalendar struct {
	filePath string
	logger   *zap.Logger
	days     map[time.Time]DayInfo
}

// NewFileCalendar creates a new FileCalendar instance
func NewFileCalendar(filePath string, logger *zap.Logger) *FileCalendar {
	return &FileCalendar{
		filePath: filePath,
		logger:   logger,
		days:     make(map[time.Time]DayInfo),
	}
}

// Load loads calendar data from file
func (fc *FileCalendar) Load() error {
	file, err := os.Open(fc.filePath)
	if err != nil {
		return fmt.Errorf("failed to open calendar file: %w", err)
	}
	defer file.Close()

	if err := fc.read(file); err != nil {
		return err
	}

	fc.logger.Info("Calendar file loaded",
		zap.String("file", fc.filePath),
		zap.Int("days", len(fc.days)))

	return nil
}

// read parses lines of the form
//
//	YYYY-MM-DD type working_hours [note]
//
// e.g. "2025-03-30 holiday 0 Ramazan Bayramı". Blank lines and lines starting
// with # are skipped; malformed lines are logged and skipped.
func (fc *FileCalendar) read(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) < 3 {
			fc.logger.Warn("Invalid line format", zap.Int("line", lineNo), zap.String("text", line))
			continue
		}

		date, err := time.Parse(dateutil.DateLayout, parts[0])
		if err != nil {
			fc.logger.Warn("Failed to parse date", zap.Int("line", lineNo), zap.String("date", parts[0]), zap.Error(err))
			continue
		}

		dayType, ok := ParseDayType(parts[1])
		if !ok {
			fc.logger.Warn("Unknown day type", zap.Int("line", lineNo), zap.String("type", parts[1]))
			continue
		}

		hours, err := strconv.Atoi(parts[2])
		if err != nil || hours < 0 {
			fc.logger.Warn("Failed to parse hours", zap.Int("line", lineNo), zap.String("hours", parts[2]), zap.Error(err))
			continue
		}

		if !dayType.IsWorkType() {
			hours = 0
		}

		day := dateutil.CivilDate(date)
		fc.days[day] = DayInfo{
			Date:         day,
			Type:         dayType,
			WorkingHours: hours,
			IsWorkday:    dayType.IsWorkType(),
			Note:         strings.Join(parts[3:], " "),
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading calendar file: %w", err)
	}

	return nil
}

// IsWorkday checks if the given date is a working day
func (fc *FileCalendar) IsWorkday(date time.Time) (bool, int, error) {
	dayInfo, err := fc.GetDayInfo(date)
	if err != nil {
		return false, 0, err
	}

	return dayInfo.IsWorkday, dayInfo.WorkingHours, nil
}

// GetMonthInfo returns the listed days of the month. Days missing from the
// file are missing from the result too.
func (fc *FileCalendar) GetMonthInfo(year int, month time.Month) (*MonthInfo, error) {
	var days []DayInfo
	for date, info := range fc.days {
		if date.Year() == year && date.Month() == month {
			days = append(days, info)
		}
	}

	if len(days) == 0 {
		return nil, fmt.Errorf("%w: %d-%02d", ErrMonthNotFound, year, month)
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})

	return newMonthInfo(year, month, days), nil
}

// GetDayInfo returns detailed info for a specific day
func (fc *FileCalendar) GetDayInfo(date time.Time) (*DayInfo, error) {
	day := dateutil.CivilDate(date)

	dayInfo, ok := fc.days[day]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDayNotFound, dateutil.FormatDate(day))
	}

	return &dayInfo, nil
}

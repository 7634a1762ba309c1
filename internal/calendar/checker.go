package calendar

import (
	"time"

	"go.uber.org/zap"

	"github.com/username/holiday-checker/pkg/dateutil"
)

// Clock returns the current time. The local calendar date of the returned
// value is treated as "today".
type Clock func() time.Time

// Checker answers day-off questions relative to its clock
type Checker struct {
	now    Clock
	logger *zap.Logger
}

// Option configures a Checker
type Option func(*Checker)

// WithClock replaces the system clock
func WithClock(clock Clock) Option {
	return func(c *Checker) {
		if clock != nil {
			c.now = clock
		}
	}
}

// WithLogger sets the logger used for debug output
func WithLogger(logger *zap.Logger) Option {
	return func(c *Checker) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewChecker creates a Checker using the system clock unless overridden
func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultChecker = NewChecker()

// IsDayOff reports whether today (system local date) is a weekend or a Turkish public holiday
func IsDayOff() bool {
	return defaultChecker.IsDayOff()
}

// Now returns the checker's current time
func (c *Checker) Now() time.Time {
	return c.now()
}

// Today returns the checker's current local date as a civil date
func (c *Checker) Today() time.Time {
	return dateutil.CivilDate(c.now())
}

// PublicHolidays returns PublicHolidays(*year), or the holidays of the
// current year when year is nil.
func (c *Checker) PublicHolidays(year *int) []time.Time {
	y := c.Today().Year()
	if year != nil {
		y = *year
	}

	if clamped, changed := ClampYear(y); changed {
		c.logger.Debug("Year out of supported range, clamping",
			zap.Int("year", y),
			zap.Int("clamped", clamped))
	}

	return PublicHolidays(y)
}

// CurrentYearHolidays returns the public holidays of the current year
func (c *Checker) CurrentYearHolidays() []time.Time {
	return c.PublicHolidays(nil)
}

// IsDayOff reports whether today is a weekend or one of this year's public holidays
func (c *Checker) IsDayOff() bool {
	today := c.Today()

	if dateutil.IsWeekend(today) {
		c.logger.Debug("Today is a weekend",
			zap.String("date", dateutil.FormatDate(today)))
		return true
	}

	for _, holiday := range PublicHolidays(today.Year()) {
		if holiday.Equal(today) {
			c.logger.Debug("Today is a public holiday",
				zap.String("date", dateutil.FormatDate(today)))
			return true
		}
	}

	return false
}

package calendar

import (
	"time"

	cal "github.com/rickar/cal/v2"

	"github.com/username/holiday-checker/pkg/dateutil"
)

// Year bounds accepted by the holiday functions. Years outside the range are
// clamped so that the day arithmetic cannot overflow an int on any platform.
const (
	MinYear = -1_000_000
	MaxYear = 1_000_000
)

// Kind tells fixed civil holidays apart from lunar-calendar ones
type Kind int

const (
	KindFixed Kind = iota + 1
	KindReligious
)

func (k Kind) String() string {
	switch k {
	case KindFixed:
		return "fixed"
	case KindReligious:
		return "religious"
	default:
		return "unknown"
	}
}

// Holiday is a single public holiday date
type Holiday struct {
	Name string
	Date time.Time
	Kind Kind
}

type definition struct {
	holiday *cal.Holiday
	kind    Kind
}

var fixedDefinitions = []definition{
	fixed("New Year's Day", time.January, 1),
	fixed("National Sovereignty and Children's Day", time.April, 23),
	fixed("Labour and Solidarity Day", time.May, 1),
	fixed("Commemoration of Atatürk, Youth and Sports Day", time.May, 19),
	fixed("Democracy and National Unity Day", time.July, 15),
	fixed("Victory Day", time.August, 30),
	fixed("Republic Day", time.October, 29),
}

// Ramazan Bayramı starts on 1 Shawwal (3 days), Kurban Bayramı on 10 Dhu al-Hijjah (4 days).
var religiousDefinitions = append(
	observance("Ramazan Bayramı", 10, 1, 3),
	observance("Kurban Bayramı", 12, 10, 4)...,
)

func fixed(name string, month time.Month, day int) definition {
	return definition{
		holiday: &cal.Holiday{
			Name:  name,
			Type:  cal.ObservancePublic,
			Month: month,
			Day:   day,
			Func:  cal.CalcDayOfMonth,
		},
		kind: KindFixed,
	}
}

// observance defines every day of a multi-day religious holiday starting on
// the given lunar month and day
func observance(name string, lunarMonth, lunarDay, days int) []definition {
	defs := make([]definition, 0, days)
	for i := 0; i < days; i++ {
		defs = append(defs, definition{
			holiday: &cal.Holiday{
				Name: name,
				Type: cal.ObservancePublic,
				Func: calcLunarDay(lunarMonth, lunarDay, i),
			},
			kind: KindReligious,
		})
	}
	return defs
}

func calcLunarDay(lunarMonth, lunarDay, offset int) func(*cal.Holiday, int) time.Time {
	return func(_ *cal.Holiday, year int) time.Time {
		return hijriToGregorian(year, lunarMonth, lunarDay).AddDate(0, 0, offset)
	}
}

// ClampYear limits year to [MinYear, MaxYear]. The second result reports
// whether the year had to be changed.
func ClampYear(year int) (int, bool) {
	switch {
	case year < MinYear:
		return MinYear, true
	case year > MaxYear:
		return MaxYear, true
	default:
		return year, false
	}
}

// PublicHolidays returns the Turkish public holiday dates for year: the seven
// fixed holidays in calendar order followed by ReligiousHolidays(year).
func PublicHolidays(year int) []time.Time {
	year, _ = ClampYear(year)

	dates := make([]time.Time, 0, len(fixedDefinitions)+len(religiousDefinitions))
	dates = appendDates(dates, fixedDefinitions, year)
	return append(dates, ReligiousHolidays(year)...)
}

// ReligiousHolidays returns the three days of Ramazan Bayramı followed by the
// four days of Kurban Bayramı, as approximated for year.
func ReligiousHolidays(year int) []time.Time {
	year, _ = ClampYear(year)
	return appendDates(make([]time.Time, 0, len(religiousDefinitions)), religiousDefinitions, year)
}

// Holidays returns the same dates as PublicHolidays, in the same order, with names attached.
func Holidays(year int) []Holiday {
	year, _ = ClampYear(year)

	holidays := make([]Holiday, 0, len(fixedDefinitions)+len(religiousDefinitions))
	for _, defs := range [][]definition{fixedDefinitions, religiousDefinitions} {
		for _, def := range defs {
			holidays = append(holidays, Holiday{
				Name: def.holiday.Name,
				Date: calcDate(def.holiday, year),
				Kind: def.kind,
			})
		}
	}
	return holidays
}

// Definitions returns the Turkish holidays as rickar/cal definitions, one per
// observed day, so they can be added to a cal.BusinessCalendar. Each call
// returns fresh copies.
func Definitions() []*cal.Holiday {
	out := make([]*cal.Holiday, 0, len(fixedDefinitions)+len(religiousDefinitions))
	for _, defs := range [][]definition{fixedDefinitions, religiousDefinitions} {
		for _, def := range defs {
			h := *def.holiday
			out = append(out, &h)
		}
	}
	return out
}

func appendDates(dates []time.Time, defs []definition, year int) []time.Time {
	for _, def := range defs {
		dates = append(dates, calcDate(def.holiday, year))
	}
	return dates
}

func calcDate(h *cal.Holiday, year int) time.Time {
	actual, _ := h.Calc(year)
	return dateutil.CivilDate(actual)
}

package calendar

import (
	"time"

	"github.com/username/holiday-checker/pkg/dateutil"
)

const (
	hijriEpochYear = 622     // Gregorian year the lunar calendar starts counting from
	hijriLeapCycle = 33      // Gregorian years per 32 lunar years, roughly
	hijriEpochJDN  = 1948440 // Julian Day Number of the lunar calendar epoch
	hijriJDNAdjust = 385
	unixEpochJDN   = 2440588 // Julian Day Number of 1970-01-01
)

// hijriToGregorian approximates the Gregorian date of the given lunar month
// and day for the lunar year that corresponds to gregorianYear.
//
// The result ignores moon sighting and can be a day or more away from the
// officially announced date. It may also fall in the previous Gregorian year.
func hijriToGregorian(gregorianYear, hijriMonth, hijriDay int) time.Time {
	elapsed := gregorianYear - hijriEpochYear
	hijriYear := elapsed + elapsed/hijriLeapCycle

	jdn := (11*hijriYear+3)/30 +
		354*hijriYear +
		30*(hijriMonth-1) +
		hijriDay +
		hijriEpochJDN - hijriJDNAdjust

	return julianDayToDate(jdn)
}

// julianDayToDate converts a Julian Day Number to a civil date
func julianDayToDate(jdn int) time.Time {
	return dateutil.Date(1970, time.January, 1+jdn-unixEpochJDN)
}

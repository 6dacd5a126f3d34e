package compliance

import (
	"sort"
	"time"

	"github.com/warp/roster-engine/roster"
)

// =============================================================================
// HOLIDAY CALENDAR - Fixed Polish public holidays
// =============================================================================

// Holiday is one public holiday.
type Holiday struct {
	Date roster.Day
	Name string
}

// HolidayCalendar answers whether a day is a statutory public holiday.
// The rule engine itself does not consume it; the payroll summary and the
// API expose it so callers can mark holiday work.
type HolidayCalendar interface {
	IsPublicHoliday(d roster.Day) bool
	Holidays(year int) []Holiday
}

// PolishHolidays is the fixed statutory calendar: the fixed-date holidays
// plus the Easter-derived ones, computed per year.
type PolishHolidays struct{}

func (p PolishHolidays) IsPublicHoliday(d roster.Day) bool {
	for _, h := range p.Holidays(d.Time.Year()) {
		if h.Date.Equal(d) {
			return true
		}
	}
	return false
}

func (PolishHolidays) Holidays(year int) []Holiday {
	easter := easterSunday(year)
	holidays := []Holiday{
		{roster.NewDay(year, time.January, 1), "New Year's Day"},
		{roster.NewDay(year, time.January, 6), "Epiphany"},
		{easter, "Easter Sunday"},
		{easter.AddDays(1), "Easter Monday"},
		{roster.NewDay(year, time.May, 1), "Labour Day"},
		{roster.NewDay(year, time.May, 3), "Constitution Day"},
		{easter.AddDays(49), "Pentecost"},
		{easter.AddDays(60), "Corpus Christi"},
		{roster.NewDay(year, time.August, 15), "Assumption Day"},
		{roster.NewDay(year, time.November, 1), "All Saints' Day"},
		{roster.NewDay(year, time.November, 11), "Independence Day"},
		{roster.NewDay(year, time.December, 25), "Christmas Day"},
		{roster.NewDay(year, time.December, 26), "Second Day of Christmas"},
	}
	sort.Slice(holidays, func(i, j int) bool {
		return holidays[i].Date.Before(holidays[j].Date)
	})
	return holidays
}

// easterSunday computes Gregorian Easter via the anonymous algorithm.
func easterSunday(year int) roster.Day {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return roster.NewDay(year, time.Month(month), day)
}

package lunar

import (
	"fmt"
	"time"

	"github.com/username/lunar-calendar/pkg/dateutil"
)

// Date is a date of the Chinese lunisolar calendar.
// Month is always the ordinal month; IsLeapMonth marks the inserted leap month
// that shares the ordinal with the preceding ordinary month.
type Date struct {
	Year        int  `json:"year"`
	Month       int  `json:"month"`
	Day         int  `json:"day"`
	IsLeapMonth bool `json:"is_leap_month"`
}

// String formats the date traditionally, e.g. 乙巳年闰六月初八
func (d Date) String() string {
	month, err := MonthName(d.Month, d.IsLeapMonth)
	if err != nil {
		return fmt.Sprintf("%d-%02d-%02d", d.Year, d.Month, d.Day)
	}
	day, err := DayName(d.Day)
	if err != nil {
		return fmt.Sprintf("%d-%02d-%02d", d.Year, d.Month, d.Day)
	}
	return SexagenaryYear(d.Year) + yearSuffix + month + day
}

// Gregorian converts the lunar date to its Gregorian equivalent
func (d Date) Gregorian() (time.Time, error) {
	return LunarToGregorian(d.Year, d.Month, d.Day, d.IsLeapMonth)
}

// newYear returns the Gregorian date of 正月初一 for the record of year
func (r yearRecord) newYear(year int) time.Time {
	return dateutil.Date(year, r.newYearMonth, r.newYearDay)
}

// NewYear returns the Gregorian date of 正月初一 of a lunar year
func NewYear(year int) (time.Time, error) {
	r, err := record(year)
	if err != nil {
		return time.Time{}, err
	}
	return r.newYear(year), nil
}

// GregorianToLunar converts a Gregorian date to the lunar calendar.
//
// Dates before the lunar new year of their Gregorian year belong to the lunar
// year that started in the previous Gregorian year.
func GregorianToLunar(year, month, day int) (Date, error) {
	if err := dateutil.ValidateDate(year, month, day); err != nil {
		return Date{}, err
	}

	r, err := record(year)
	if err != nil {
		return Date{}, err
	}

	lunarYear := year
	switch compareMonthDay(month, day, r.newYearMonth, r.newYearDay) {
	case 0:
		return Date{Year: year, Month: 1, Day: 1}, nil
	case -1:
		lunarYear = year - 1
		if r, err = record(lunarYear); err != nil {
			return Date{}, err
		}
	}

	distance := dateutil.DayDistance(r.newYear(lunarYear), dateutil.Date(year, month, day))
	return r.locate(lunarYear, distance)
}

// FromTime converts the calendar day of t (in t's location) to the lunar calendar
func FromTime(t time.Time) (Date, error) {
	return GregorianToLunar(t.Year(), int(t.Month()), t.Day())
}

// locate finds the lunar date lying distance days after 正月初一
func (r yearRecord) locate(year, distance int) (Date, error) {
	sum := 0
	for i, n := range r.lengths() {
		sum += n
		if sum > distance {
			month, isLeap := r.monthOf(i)
			return Date{
				Year:        year,
				Month:       month,
				Day:         n - (sum - distance) + 1,
				IsLeapMonth: isLeap,
			}, nil
		}
	}
	return Date{}, fmt.Errorf("%w: day %d is past the end of lunar year %d", ErrInvalidYear, distance, year)
}

// LunarToGregorian converts a lunar date to the Gregorian calendar (UTC midnight)
func LunarToGregorian(year, month, day int, isLeap bool) (time.Time, error) {
	r, err := record(year)
	if err != nil {
		return time.Time{}, err
	}

	offset, err := DaysFromNewYear(year, month, day, isLeap)
	if err != nil {
		return time.Time{}, err
	}
	offset += day - 1

	return r.newYear(year).AddDate(0, 0, offset), nil
}

// compareMonthDay orders (m1, d1) against (m2, d2) lexicographically
func compareMonthDay(m1, d1, m2, d2 int) int {
	switch {
	case m1 > m2, m1 == m2 && d1 > d2:
		return 1
	case m1 < m2, m1 == m2 && d1 < d2:
		return -1
	default:
		return 0
	}
}

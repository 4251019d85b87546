package dateutil

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidDateString is returned when a string is not "YYYY-MM-DD" or "YYYY-MM-DD hh:mm:ss"
	ErrInvalidDateString = errors.New("invalid date string")
	// ErrInvalidMonth is returned for months outside 1..12
	ErrInvalidMonth = errors.New("invalid month")
	// ErrInvalidDay is returned for days outside the month
	ErrInvalidDay = errors.New("invalid day")
)

// gregorianReformYear is the first year using the Gregorian leap rule
const gregorianReformYear = 1582

var (
	ymdPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	hmsPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`)
)

// StartOfDay returns the start of the day (00:00:00) for the given date
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// Date returns midnight UTC of the given civil date
func Date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// IsLeapYear reports whether year is a leap year.
// Years before 1582 follow the Julian rule, later years the Gregorian one.
func IsLeapYear(year int) bool {
	if year < gregorianReformYear {
		return year%4 == 0
	}
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// DaysInMonth returns the number of days in the given Gregorian month
func DaysInMonth(year, month int) (int, error) {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31, nil
	case 4, 6, 9, 11:
		return 30, nil
	case 2:
		if IsLeapYear(year) {
			return 29, nil
		}
		return 28, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidMonth, month)
	}
}

// ValidateDate checks that month and day describe a real Gregorian date
func ValidateDate(year, month, day int) error {
	days, err := DaysInMonth(year, month)
	if err != nil {
		return err
	}
	if day < 1 || day > days {
		return fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDay, year, month, day)
	}
	return nil
}

// DayDistance returns the number of whole days between two dates.
// The result is symmetric and never negative.
func DayDistance(date1, date2 time.Time) int {
	diff := date1.Sub(date2)
	if diff < 0 {
		diff = -diff
	}
	return int(diff / (24 * time.Hour))
}

// IsSameDay returns true if two dates are on the same day
func IsSameDay(date1, date2 time.Time) bool {
	return date1.Year() == date2.Year() &&
		date1.Month() == date2.Month() &&
		date1.Day() == date2.Day()
}

// ParseDateString splits a strictly formatted date string into its numeric parts.
// Accepted: "YYYY-MM-DD" (3 values) and "YYYY-MM-DD hh:mm:ss" (6 values).
func ParseDateString(str string) ([]int, error) {
	if !ymdPattern.MatchString(str) && !hmsPattern.MatchString(str) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDateString, str)
	}

	datePart, timePart, hasTime := strings.Cut(str, " ")

	fields := strings.Split(datePart, "-")
	if hasTime {
		fields = append(fields, strings.Split(timePart, ":")...)
	}

	nums := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDateString, str)
		}
		nums = append(nums, n)
	}

	return nums, nil
}

// ParseDate parses a "YYYY-MM-DD" or "YYYY-MM-DD hh:mm:ss" string into a UTC time.
// Unlike ParseDateString it also rejects out-of-range fields.
func ParseDate(dateStr string) (time.Time, error) {
	nums, err := ParseDateString(dateStr)
	if err != nil {
		return time.Time{}, err
	}

	if err := ValidateDate(nums[0], nums[1], nums[2]); err != nil {
		return time.Time{}, err
	}

	hour, minute, second := 0, 0, 0
	if len(nums) == 6 {
		hour, minute, second = nums[3], nums[4], nums[5]
		if hour > 23 || minute > 59 || second > 59 {
			return time.Time{}, fmt.Errorf("%w: time out of range in %q", ErrInvalidDateString, dateStr)
		}
	}

	return time.Date(nums[0], time.Month(nums[1]), nums[2], hour, minute, second, 0, time.UTC), nil
}

// FormatDate formats date as YYYY-MM-DD
func FormatDate(date time.Time) string {
	return date.Format("2006-01-02")
}

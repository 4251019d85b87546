package lunar

import "fmt"

const (
	shortMonth = 29
	fieldWidth = 16
)

func invalidMonth(month int) error {
	return fmt.Errorf("%w: %d", ErrInvalidMonth, month)
}

func invalidDay(day int) error {
	return fmt.Errorf("%w: %d", ErrInvalidDay, day)
}

// monthCount is 13 for years with a leap month, 12 otherwise
func (r yearRecord) monthCount() int {
	if r.leapMonth != 0 {
		return 13
	}
	return 12
}

// lengths decodes the month bitfield into per-slot month lengths
func (r yearRecord) lengths() []int {
	n := r.monthCount()
	out := make([]int, n)
	for i := 0; i < n; i++ {
		bit := int(r.monthBits>>(fieldWidth-1-i)) & 1
		out[i] = shortMonth + bit
	}
	return out
}

// slot resolves an ordinal month (and leap flag) to its 0-based position
// in the decoded month sequence.
func (r yearRecord) slot(month int, isLeap bool) (int, error) {
	if month < 1 || month > 12 {
		return 0, invalidMonth(month)
	}
	if isLeap && r.leapMonth != month {
		return 0, fmt.Errorf("%w: no leap month %d in this year (leap month is %d)", ErrInvalidMonth, month, r.leapMonth)
	}

	switch {
	case r.leapMonth == 0, r.leapMonth > month:
		return month - 1, nil
	case r.leapMonth < month:
		return month, nil
	case isLeap:
		return month, nil
	default:
		return month - 1, nil
	}
}

// monthOf is the inverse of slot
func (r yearRecord) monthOf(slot int) (month int, isLeap bool) {
	switch {
	case r.leapMonth == 0, slot+1 <= r.leapMonth:
		return slot + 1, false
	case slot == r.leapMonth:
		return r.leapMonth, true
	default:
		return slot, false
	}
}

// MonthLengths returns the length of every month of a lunar year in order,
// 13 entries when the year has a leap month and 12 otherwise.
func MonthLengths(year int) ([]int, error) {
	r, err := record(year)
	if err != nil {
		return nil, err
	}
	return r.lengths(), nil
}

// LeapMonth returns the ordinal month followed by a leap month, or 0
func LeapMonth(year int) (int, error) {
	r, err := record(year)
	if err != nil {
		return 0, err
	}
	return r.leapMonth, nil
}

// MonthLength returns the number of days (29 or 30) of a lunar month
func MonthLength(year, month int, isLeap bool) (int, error) {
	r, err := record(year)
	if err != nil {
		return 0, err
	}
	s, err := r.slot(month, isLeap)
	if err != nil {
		return 0, err
	}
	return r.lengths()[s], nil
}

// YearDays returns the total number of days of a lunar year
func YearDays(year int) (int, error) {
	lengths, err := MonthLengths(year)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, n := range lengths {
		total += n
	}
	return total, nil
}

// DaysFromNewYear returns the number of days between 正月初一 and the first day
// of the given month. Add day-1 to reach the day itself.
// The result depends only on year, month and isLeap; day is checked against the
// month length and ErrInvalidDay is returned when it does not fit.
func DaysFromNewYear(year, month, day int, isLeap bool) (int, error) {
	r, err := record(year)
	if err != nil {
		return 0, err
	}
	s, err := r.slot(month, isLeap)
	if err != nil {
		return 0, err
	}

	lengths := r.lengths()
	if day < 1 || day > lengths[s] {
		return 0, invalidDay(day)
	}

	distance := 0
	for _, n := range lengths[:s] {
		distance += n
	}
	return distance, nil
}

package lunar

import (
	"time"

	"github.com/username/lunar-calendar/pkg/dateutil"
)

// Year summarizes one lunar year of the table
type Year struct {
	Year          int       `json:"year"`
	Name          string    `json:"name"`
	Zodiac        string    `json:"zodiac"`
	LeapMonth     int       `json:"leap_month"`
	NewYear       time.Time `json:"new_year"`
	MonthLengths  []int     `json:"month_lengths"`
	TotalDays     int       `json:"total_days"`
	GregorianLeap bool      `json:"gregorian_leap"`
}

// YearInfo returns the summary of a lunar year
func YearInfo(year int) (*Year, error) {
	r, err := record(year)
	if err != nil {
		return nil, err
	}

	lengths := r.lengths()
	total := 0
	for _, n := range lengths {
		total += n
	}

	return &Year{
		Year:          year,
		Name:          SexagenaryYear(year),
		Zodiac:        Zodiac(year),
		LeapMonth:     r.leapMonth,
		NewYear:       r.newYear(year),
		MonthLengths:  lengths,
		TotalDays:     total,
		GregorianLeap: dateutil.IsLeapYear(year),
	}, nil
}

// Months returns the first day of every month of the year in calendar order
func (y *Year) Months() []Date {
	out := make([]Date, 0, len(y.MonthLengths))
	for m := 1; m <= 12; m++ {
		out = append(out, Date{Year: y.Year, Month: m, Day: 1})
		if m == y.LeapMonth {
			out = append(out, Date{Year: y.Year, Month: m, Day: 1, IsLeapMonth: true})
		}
	}
	return out
}

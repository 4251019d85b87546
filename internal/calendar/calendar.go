package calendar

import (
	"fmt"
	"time"

	"github.com/username/lunar-calendar/pkg/lunar"
)

// DayInfo represents lunar calendar information about a specific Gregorian day
type DayInfo struct {
	Date        time.Time  `json:"date"`
	Lunar       lunar.Date `json:"lunar"`
	YearName    string     `json:"year_name"` // stem-branch name of the lunar year, e.g. 乙巳
	Zodiac      string     `json:"zodiac"`
	MonthName   string     `json:"month_name"`
	DayName     string     `json:"day_name"`
	IsNewYear   bool       `json:"is_new_year"`
	IsLeapMonth bool       `json:"is_leap_month"`
	Festivals   []string   `json:"festivals,omitempty"`
}

// Label returns the short lunar label of the day, e.g. 闰六月初八
func (d *DayInfo) Label() string {
	return d.MonthName + d.DayName
}

// MonthInfo represents lunar information for every day of a Gregorian month
type MonthInfo struct {
	Year       int        `json:"year"`
	Month      time.Month `json:"month"`
	FirstLunar lunar.Date `json:"first_lunar"`
	LastLunar  lunar.Date `json:"last_lunar"`
	Days       []DayInfo  `json:"days"`
}

// Calendar interface for looking up lunar information
type Calendar interface {
	// GetDayInfo returns lunar info for a specific day
	GetDayInfo(date time.Time) (*DayInfo, error)

	// GetMonthInfo returns lunar info for the entire Gregorian month
	GetMonthInfo(year int, month time.Month) (*MonthInfo, error)
}

// newDayInfo fills the display fields of a converted day
func newDayInfo(date time.Time, l lunar.Date) (DayInfo, error) {
	monthName, err := lunar.MonthName(l.Month, l.IsLeapMonth)
	if err != nil {
		return DayInfo{}, err
	}
	dayName, err := lunar.DayName(l.Day)
	if err != nil {
		return DayInfo{}, err
	}

	return DayInfo{
		Date:        date,
		Lunar:       l,
		YearName:    lunar.SexagenaryYear(l.Year),
		Zodiac:      lunar.Zodiac(l.Year),
		MonthName:   monthName,
		DayName:     dayName,
		IsNewYear:   l.Month == 1 && l.Day == 1 && !l.IsLeapMonth,
		IsLeapMonth: l.IsLeapMonth,
	}, nil
}

// findDay returns a copy of the matching day of a month
func findDay(monthInfo *MonthInfo, date time.Time) (*DayInfo, bool) {
	for _, day := range monthInfo.Days {
		if day.Date.Day() == date.Day() {
			return &day, true
		}
	}
	return nil, false
}

// dayNotFound reports a day missing from a partly covered month
func dayNotFound(date time.Time) error {
	return fmt.Errorf("%w: %s is not covered by the lunar table", lunar.ErrInvalidYear, date.Format("2006-01-02"))
}

// copyMonth returns a MonthInfo whose Days slice may be modified freely
func copyMonth(monthInfo *MonthInfo) *MonthInfo {
	days := make([]DayInfo, len(monthInfo.Days))
	copy(days, monthInfo.Days)
	for i := range days {
		days[i].Festivals = append([]string(nil), days[i].Festivals...)
	}
	return &MonthInfo{
		Year:       monthInfo.Year,
		Month:      monthInfo.Month,
		FirstLunar: monthInfo.FirstLunar,
		LastLunar:  monthInfo.LastLunar,
		Days:       days,
	}
}

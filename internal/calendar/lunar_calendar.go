package calendar

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/username/lunar-calendar/pkg/dateutil"
	"github.com/username/lunar-calendar/pkg/lunar"
	"go.uber.org/zap"
)

// LunarCalendar implements Calendar using the built-in lunar year table
type LunarCalendar struct {
	logger  *zap.Logger
	cache   map[string]*MonthInfo // key: "YYYY-MM"
	cacheMu sync.RWMutex
}

// NewLunarCalendar creates a new LunarCalendar instance
func NewLunarCalendar(logger *zap.Logger) *LunarCalendar {
	return &LunarCalendar{
		logger: logger,
		cache:  make(map[string]*MonthInfo),
	}
}

// GetDayInfo returns lunar info for a specific day
func (c *LunarCalendar) GetDayInfo(date time.Time) (*DayInfo, error) {
	monthInfo, err := c.GetMonthInfo(date.Year(), date.Month())
	if err != nil {
		return nil, err
	}

	dayInfo, ok := findDay(monthInfo, date)
	if !ok {
		return nil, dayNotFound(date)
	}
	return dayInfo, nil
}

// GetMonthInfo returns lunar info for the entire month.
// Months are computed once and served from the cache afterwards; the returned
// value is shared and must not be modified.
func (c *LunarCalendar) GetMonthInfo(year int, month time.Month) (*MonthInfo, error) {
	cacheKey := fmt.Sprintf("%d-%02d", year, month)

	c.cacheMu.RLock()
	if cached, ok := c.cache[cacheKey]; ok {
		c.cacheMu.RUnlock()
		c.logger.Debug("Using cached month info",
			zap.String("month", cacheKey))
		return cached, nil
	}
	c.cacheMu.RUnlock()

	monthInfo, err := c.buildMonth(year, month)
	if err != nil {
		return nil, err
	}

	c.cacheMu.Lock()
	c.cache[cacheKey] = monthInfo
	c.cacheMu.Unlock()

	return monthInfo, nil
}

// buildMonth converts every day of a Gregorian month that the lunar table covers
func (c *LunarCalendar) buildMonth(year int, month time.Month) (*MonthInfo, error) {
	daysInMonth, err := dateutil.DaysInMonth(year, int(month))
	if err != nil {
		return nil, err
	}

	monthInfo := &MonthInfo{
		Year:  year,
		Month: month,
		Days:  make([]DayInfo, 0, daysInMonth),
	}

	var lastErr error
	for day := 1; day <= daysInMonth; day++ {
		l, err := lunar.GregorianToLunar(year, int(month), day)
		if errors.Is(err, lunar.ErrInvalidYear) {
			// Edge months of the table are only partly covered
			lastErr = err
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to convert %04d-%02d-%02d: %w", year, month, day, err)
		}

		dayInfo, err := newDayInfo(dateutil.Date(year, int(month), day), l)
		if err != nil {
			return nil, err
		}
		monthInfo.Days = append(monthInfo.Days, dayInfo)
	}

	if len(monthInfo.Days) == 0 {
		return nil, fmt.Errorf("failed to convert %04d-%02d: %w", year, month, lastErr)
	}
	if lastErr != nil {
		c.logger.Debug("Month partly outside the lunar table",
			zap.Int("year", year),
			zap.Int("month", int(month)),
			zap.Int("days", len(monthInfo.Days)))
	}

	monthInfo.FirstLunar = monthInfo.Days[0].Lunar
	monthInfo.LastLunar = monthInfo.Days[len(monthInfo.Days)-1].Lunar

	c.logger.Debug("Month converted",
		zap.Int("year", year),
		zap.Int("month", int(month)),
		zap.Stringer("first", monthInfo.FirstLunar),
		zap.Stringer("last", monthInfo.LastLunar))

	return monthInfo, nil
}

// ClearCache clears the cache
func (c *LunarCalendar) ClearCache() {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()

	c.cache = make(map[string]*MonthInfo)
	c.logger.Info("Calendar cache cleared")
}

package calendar

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// CompositeCalendar implements Calendar by layering festivals over a primary calendar
// Primary: LunarCalendar (table)
// Festivals: FestivalBook (local or built-in file)
type CompositeCalendar struct {
	primary   Calendar
	festivals *FestivalBook
	logger    *zap.Logger
}

// NewCompositeCalendar creates a new CompositeCalendar
func NewCompositeCalendar(primary Calendar, festivals *FestivalBook, logger *zap.Logger) *CompositeCalendar {
	return &CompositeCalendar{
		primary:   primary,
		festivals: festivals,
		logger:    logger,
	}
}

// GetMonthInfo returns lunar info for the entire month with festivals filled in
func (cc *CompositeCalendar) GetMonthInfo(year int, month time.Month) (*MonthInfo, error) {
	monthInfo, err := cc.primary.GetMonthInfo(year, month)
	if err != nil {
		return nil, err
	}

	// The primary may hand out shared cached data
	annotated := copyMonth(monthInfo)
	for i := range annotated.Days {
		cc.annotate(&annotated.Days[i])
	}

	return annotated, nil
}

// GetDayInfo returns lunar info for a specific day with festivals filled in
func (cc *CompositeCalendar) GetDayInfo(date time.Time) (*DayInfo, error) {
	dayInfo, err := cc.primary.GetDayInfo(date)
	if err != nil {
		return nil, err
	}

	annotated := *dayInfo
	annotated.Festivals = append([]string(nil), dayInfo.Festivals...)
	cc.annotate(&annotated)

	return &annotated, nil
}

func (cc *CompositeCalendar) annotate(day *DayInfo) {
	if cc.festivals == nil {
		return
	}

	names := cc.festivals.Lookup(day)
	if len(names) > 0 {
		cc.logger.Debug("Festival matched",
			zap.Time("date", day.Date),
			zap.Strings("festivals", names))
	}
	day.Festivals = append(day.Festivals, names...)
}

// LoadFestivals loads the festival book
func (cc *CompositeCalendar) LoadFestivals() error {
	if cc.festivals == nil {
		return nil
	}
	if err := cc.festivals.Load(); err != nil {
		return fmt.Errorf("failed to load festival book: %w", err)
	}
	cc.logger.Info("Festivals attached to calendar")
	return nil
}

package calendar

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/username/lunar-calendar/pkg/dateutil"
)

const (
	// MaxExportDays bounds a single export request
	MaxExportDays = 3660

	DefaultProdID   = "-//lunar-calendar//Lunar Calendar//ZH"
	DefaultCalName  = "农历"
	propCalName     = "X-WR-CALNAME"
	uidDomain       = "lunar-calendar"
	uidHashLength   = 12
	festivalJoinSep = "、"
)

var (
	// ErrInvalidRange is returned when the export range is reversed or too long
	ErrInvalidRange = errors.New("invalid export range")
)

// ExportOptions controls the generated iCalendar feed
type ExportOptions struct {
	ProdID  string
	Name    string
	AllDays bool // emit an event for every day, not only festivals and new year
	Now     func() time.Time
}

// ExportICS writes all-day events for the days in [from, to] as an iCalendar stream.
// It returns the number of events written.
func ExportICS(cal Calendar, from, to time.Time, opts ExportOptions, w io.Writer) (int, error) {
	from = dateutil.Date(from.Year(), int(from.Month()), from.Day())
	to = dateutil.Date(to.Year(), int(to.Month()), to.Day())

	if to.Before(from) {
		return 0, fmt.Errorf("%w: %s is before %s", ErrInvalidRange, dateutil.FormatDate(to), dateutil.FormatDate(from))
	}
	if span := dateutil.DayDistance(from, to) + 1; span > MaxExportDays {
		return 0, fmt.Errorf("%w: %d days exceeds %d", ErrInvalidRange, span, MaxExportDays)
	}

	if opts.ProdID == "" {
		opts.ProdID = DefaultProdID
	}
	if opts.Name == "" {
		opts.Name = DefaultCalName
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	feed := ical.NewCalendar()
	feed.Props.SetText(ical.PropVersion, "2.0")
	feed.Props.SetText(ical.PropProductID, opts.ProdID)
	feed.Props.SetText(ical.PropCalendarScale, "GREGORIAN")

	// X-WR-CALNAME is written without a VALUE parameter
	calName := ical.NewProp(propCalName)
	calName.SetText(opts.Name)
	calName.Params.Del(ical.ParamValue)
	feed.Props.Set(calName)

	dtStamp := ical.NewProp(ical.PropDateTimeStamp)
	dtStamp.SetDateTime(now().UTC())

	for month := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC); !month.After(to); month = month.AddDate(0, 1, 0) {
		monthInfo, err := cal.GetMonthInfo(month.Year(), month.Month())
		if err != nil {
			return 0, fmt.Errorf("failed to get month info: %w", err)
		}

		for i := range monthInfo.Days {
			day := &monthInfo.Days[i]
			if day.Date.Before(from) || day.Date.After(to) {
				continue
			}
			if !opts.AllDays && len(day.Festivals) == 0 && !day.IsNewYear {
				continue
			}

			event := newEvent(day)
			event.Props.Set(dtStamp)
			feed.Children = append(feed.Children, event.Component)
		}
	}

	// The encoder refuses a calendar without components
	if len(feed.Children) == 0 {
		if err := writeEmptyCalendar(w, feed.Props); err != nil {
			return 0, fmt.Errorf("failed to encode calendar: %w", err)
		}
		return 0, nil
	}

	if err := ical.NewEncoder(w).Encode(feed); err != nil {
		return 0, fmt.Errorf("failed to encode calendar: %w", err)
	}

	return len(feed.Children), nil
}

// writeEmptyCalendar writes the calendar properties the same way the encoder
// would, in sorted order.
func writeEmptyCalendar(w io.Writer, props ical.Props) error {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("BEGIN:" + ical.CompCalendar + "\r\n")
	for _, name := range names {
		for _, prop := range props[name] {
			b.WriteString(name + ":" + prop.Value + "\r\n")
		}
	}
	b.WriteString("END:" + ical.CompCalendar + "\r\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func newEvent(day *DayInfo) *ical.Event {
	summary := day.Label()
	if len(day.Festivals) > 0 {
		summary = strings.Join(day.Festivals, festivalJoinSep)
	}

	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, eventUID(day.Date, summary))
	event.Props.SetText(ical.PropSummary, summary)
	event.Props.SetText(ical.PropDescription, day.Lunar.String())

	dtStart := ical.NewProp(ical.PropDateTimeStart)
	dtStart.SetDate(day.Date)
	event.Props.Set(dtStart)

	return event
}

// eventUID is stable across exports of the same day
func eventUID(date time.Time, summary string) string {
	hash := sha256.Sum256([]byte(dateutil.FormatDate(date) + "|" + summary))
	return fmt.Sprintf("%x@%s", hash[:uidHashLength], uidDomain)
}

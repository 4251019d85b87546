package server

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/username/lunar-calendar/internal/calendar"
	"github.com/username/lunar-calendar/pkg/dateutil"
	"github.com/username/lunar-calendar/pkg/lunar"
)

// GregorianRequest is the query of a lunar to Gregorian conversion
type GregorianRequest struct {
	Year  int  `query:"year" validate:"required,min=1891,max=2100"`
	Month int  `query:"month" validate:"required,min=1,max=12"`
	Day   int  `query:"day" validate:"required,min=1,max=30"`
	Leap  bool `query:"leap"`
}

// GregorianResponse is the result of a lunar to Gregorian conversion
type GregorianResponse struct {
	Date  string     `json:"date"`
	Lunar lunar.Date `json:"lunar"`
	Label string     `json:"label"`
}

// ICSRequest is the query of a calendar export
type ICSRequest struct {
	From    string `query:"from" validate:"required"`
	To      string `query:"to" validate:"required"`
	AllDays bool   `query:"all_days"`
}

func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   s.now().UTC().Format(time.RFC3339),
	})
}

// getLunar converts a Gregorian date, GET /api/v1/lunar/:date
func (s *Server) getLunar(c echo.Context) error {
	date, err := dateutil.ParseDate(c.Param("date"))
	if err != nil {
		return err
	}

	info, err := s.calendar.GetDayInfo(date)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, info)
}

// getGregorian converts a lunar date, GET /api/v1/gregorian?year=&month=&day=&leap=
func (s *Server) getGregorian(c echo.Context) error {
	var req GregorianRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	l := lunar.Date{Year: req.Year, Month: req.Month, Day: req.Day, IsLeapMonth: req.Leap}
	date, err := l.Gregorian()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, GregorianResponse{
		Date:  dateutil.FormatDate(date),
		Lunar: l,
		Label: l.String(),
	})
}

// getYear describes a lunar year, GET /api/v1/years/:year
func (s *Server) getYear(c echo.Context) error {
	year, err := lunar.ParseYear(c.Param("year"))
	if err != nil {
		return err
	}

	info, err := lunar.YearInfo(year)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, info)
}

// getMonth lists every day of a Gregorian month, GET /api/v1/months/:year/:month
func (s *Server) getMonth(c echo.Context) error {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return fmt.Errorf("%w: year %q", lunar.ErrInvalidInput, c.Param("year"))
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		return fmt.Errorf("%w: month %q", lunar.ErrInvalidInput, c.Param("month"))
	}
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: %d", lunar.ErrInvalidMonth, month)
	}

	info, err := s.calendar.GetMonthInfo(year, time.Month(month))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, info)
}

// getICS exports festivals as iCalendar, GET /api/v1/calendar.ics?from=&to=&all_days=
func (s *Server) getICS(c echo.Context) error {
	var req ICSRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	from, err := dateutil.ParseDate(req.From)
	if err != nil {
		return err
	}
	to, err := dateutil.ParseDate(req.To)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	opts := calendar.ExportOptions{
		ProdID:  s.export.ProdID,
		Name:    s.export.Name,
		AllDays: req.AllDays,
		Now:     s.now,
	}
	if _, err := calendar.ExportICS(s.calendar, from, to, opts, &buf); err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="lunar.ics"`)
	return c.Blob(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
}

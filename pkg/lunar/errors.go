package lunar

import (
	"errors"

	"github.com/username/lunar-calendar/pkg/dateutil"
)

var (
	// ErrInvalidInput is returned for non-numeric or malformed arguments
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidYear is returned for years the lunar table does not cover
	ErrInvalidYear = errors.New("invalid year")
	// ErrInvalidMonth is returned for months outside 1..12 and for leap months that do not exist
	ErrInvalidMonth = dateutil.ErrInvalidMonth
	// ErrInvalidDay is returned for days outside the month
	ErrInvalidDay = dateutil.ErrInvalidDay
	// ErrInvalidDateString is returned by the strict date string parser
	ErrInvalidDateString = dateutil.ErrInvalidDateString
)

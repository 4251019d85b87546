package calendar

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/username/lunar-calendar/pkg/lunar"
	"go.uber.org/zap"
)

//go:embed festivals.txt
var defaultFestivals []byte

// FestivalKind tells which calendar a festival date refers to
type FestivalKind int

const (
	FestivalLunar FestivalKind = iota + 1
	FestivalSolar
)

// Festival is a single entry of a festival book
type Festival struct {
	Kind    FestivalKind
	Month   int
	Day     int
	LastDay bool // matches the final day of the lunar month
	Name    string
}

// matches reports whether the festival falls on the given day
func (f Festival) matches(info *DayInfo) bool {
	switch f.Kind {
	case FestivalSolar:
		return int(info.Date.Month()) == f.Month && info.Date.Day() == f.Day
	case FestivalLunar:
		// Leap months repeat the ordinal but never the festivals
		if info.Lunar.IsLeapMonth || info.Lunar.Month != f.Month {
			return false
		}
		if !f.LastDay {
			return info.Lunar.Day == f.Day
		}
		length, err := lunar.MonthLength(info.Lunar.Year, f.Month, false)
		return err == nil && info.Lunar.Day == length
	}
	return false
}

// FestivalBook holds festivals loaded from a local text file
type FestivalBook struct {
	filePath  string
	logger    *zap.Logger
	festivals []Festival
}

// NewFestivalBook creates a new FestivalBook instance.
// An empty filePath selects the built-in book.
func NewFestivalBook(filePath string, logger *zap.Logger) *FestivalBook {
	return &FestivalBook{
		filePath: filePath,
		logger:   logger,
	}
}

// Load loads festivals from file
func (fb *FestivalBook) Load() error {
	if fb.filePath == "" {
		return fb.load(bytes.NewReader(defaultFestivals), "built-in")
	}

	file, err := os.Open(fb.filePath)
	if err != nil {
		return fmt.Errorf("failed to open festivals file: %w", err)
	}
	defer file.Close()

	return fb.load(file, fb.filePath)
}

func (fb *FestivalBook) load(r io.Reader, source string) error {
	var festivals []Festival

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Format: lunar|solar MM-DD name
		// Example: lunar 08-15 中秋节
		parts := strings.SplitN(line, " ", 3)
		if len(parts) < 3 {
			fb.logger.Warn("Invalid line format", zap.String("line", line))
			continue
		}

		festival, err := parseFestival(parts[0], parts[1], strings.TrimSpace(parts[2]))
		if err != nil {
			fb.logger.Warn("Failed to parse festival", zap.String("line", line), zap.Error(err))
			continue
		}
		festivals = append(festivals, festival)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading festivals file: %w", err)
	}

	fb.festivals = festivals

	fb.logger.Info("Festival book loaded",
		zap.String("source", source),
		zap.Int("festivals", len(festivals)))

	return nil
}

func parseFestival(kindStr, dateStr, name string) (Festival, error) {
	festival := Festival{Name: name}

	switch kindStr {
	case "lunar":
		festival.Kind = FestivalLunar
	case "solar":
		festival.Kind = FestivalSolar
	default:
		return Festival{}, fmt.Errorf("unknown festival kind %q", kindStr)
	}

	monthStr, dayStr, ok := strings.Cut(dateStr, "-")
	if !ok {
		return Festival{}, fmt.Errorf("invalid date %q", dateStr)
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		return Festival{}, fmt.Errorf("invalid month %q", monthStr)
	}
	festival.Month = month

	if dayStr == "last" {
		if festival.Kind != FestivalLunar {
			return Festival{}, fmt.Errorf("\"last\" is only valid for lunar festivals")
		}
		festival.LastDay = true
		return festival, nil
	}

	maxDay := 30
	if festival.Kind == FestivalSolar {
		maxDay = 31
	}
	day, err := strconv.Atoi(dayStr)
	if err != nil || day < 1 || day > maxDay {
		return Festival{}, fmt.Errorf("invalid day %q", dayStr)
	}
	festival.Day = day

	return festival, nil
}

// Festivals returns the loaded festivals
func (fb *FestivalBook) Festivals() []Festival {
	return append([]Festival(nil), fb.festivals...)
}

// Lookup returns the names of festivals falling on the given day
func (fb *FestivalBook) Lookup(info *DayInfo) []string {
	var names []string
	for _, f := range fb.festivals {
		if f.matches(info) {
			names = append(names, f.Name)
		}
	}
	return names
}

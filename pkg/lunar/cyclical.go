package lunar

import (
	"fmt"
	"strconv"
	"strings"
)

// cycleIndex maps a year onto a 0-based position of an m-element cycle.
// (year-3) mod m with a zero remainder meaning the last element.
func cycleIndex(year, m int) int {
	i := ((year-3)%m + m) % m
	if i == 0 {
		i = m
	}
	return i - 1
}

// HeavenlyStem returns the heavenly stem of the year, e.g. 2010 → 庚
func HeavenlyStem(year int) string {
	return heavenlyStems[cycleIndex(year, len(heavenlyStems))]
}

// EarthlyBranch returns the earthly branch of the year, e.g. 2010 → 寅
func EarthlyBranch(year int) string {
	return earthlyBranches[cycleIndex(year, len(earthlyBranches))]
}

// Zodiac returns the zodiac animal of the year, e.g. 2010 → 虎
func Zodiac(year int) string {
	return zodiacAnimals[cycleIndex(year, len(zodiacAnimals))]
}

// SexagenaryYear returns the stem-branch name of the year, e.g. 2025 → 乙巳
func SexagenaryYear(year int) string {
	return HeavenlyStem(year) + EarthlyBranch(year)
}

// ParseYear converts user input into a supported lunar year.
// Non-numeric input yields ErrInvalidInput, numbers outside the table ErrInvalidYear.
func ParseYear(s string) (int, error) {
	year, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: year %q is not a number", ErrInvalidInput, s)
	}
	if _, err := record(year); err != nil {
		return 0, err
	}
	return year, nil
}

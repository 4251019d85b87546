package dateutil

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestStartOfDay(t *testing.T) {
	input := time.Date(2025, 1, 15, 14, 30, 45, 123456789, time.UTC)
	expected := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	result := StartOfDay(input)

	if !result.Equal(expected) {
		t.Errorf("StartOfDay(%v) = %v, want %v", input, result, expected)
	}
}

func TestIsLeapYear(t *testing.T) {
	tests := []struct {
		name string
		year int
		want bool
	}{
		{"Century not divisible by 400", 1900, false},
		{"Divisible by 400", 2000, true},
		{"Julian year divisible by 4", 1580, true},
		{"Julian year not divisible by 4", 1581, false},
		{"Julian century is leap", 1500, true},
		{"Reform year", 1582, false},
		{"Ordinary leap year", 2024, true},
		{"Ordinary common year", 2025, false},
		{"Century 2100", 2100, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsLeapYear(tt.year); got != tt.want {
				t.Errorf("IsLeapYear(%d) = %v, want %v", tt.year, got, tt.want)
			}
		})
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		name    string
		year    int
		month   int
		want    int
		wantErr bool
	}{
		{"January", 2025, 1, 31, false},
		{"April", 2025, 4, 30, false},
		{"February common year", 2025, 2, 28, false},
		{"February leap year", 2024, 2, 29, false},
		{"February 1900", 1900, 2, 28, false},
		{"February 2000", 2000, 2, 29, false},
		{"December", 2025, 12, 31, false},
		{"Month zero", 2025, 0, 0, true},
		{"Month thirteen", 2025, 13, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DaysInMonth(tt.year, tt.month)

			if (err != nil) != tt.wantErr {
				t.Fatalf("DaysInMonth(%d, %d) error = %v, wantErr %v", tt.year, tt.month, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrInvalidMonth) {
				t.Errorf("DaysInMonth(%d, %d) error = %v, want ErrInvalidMonth", tt.year, tt.month, err)
			}
			if got != tt.want {
				t.Errorf("DaysInMonth(%d, %d) = %d, want %d", tt.year, tt.month, got, tt.want)
			}
		})
	}
}

func TestValidateDate(t *testing.T) {
	if err := ValidateDate(2024, 2, 29); err != nil {
		t.Errorf("ValidateDate(2024-02-29) error = %v, want nil", err)
	}
	if err := ValidateDate(2023, 2, 29); !errors.Is(err, ErrInvalidDay) {
		t.Errorf("ValidateDate(2023-02-29) error = %v, want ErrInvalidDay", err)
	}
	if err := ValidateDate(2023, 4, 0); !errors.Is(err, ErrInvalidDay) {
		t.Errorf("ValidateDate(2023-04-00) error = %v, want ErrInvalidDay", err)
	}
	if err := ValidateDate(2023, 14, 1); !errors.Is(err, ErrInvalidMonth) {
		t.Errorf("ValidateDate(2023-14-01) error = %v, want ErrInvalidMonth", err)
	}
}

func TestDayDistance(t *testing.T) {
	tests := []struct {
		name  string
		date1 time.Time
		date2 time.Time
		want  int
	}{
		{
			"Same day",
			Date(2025, 1, 29),
			Date(2025, 1, 29),
			0,
		},
		{
			"Across leap February",
			Date(2024, 2, 10),
			Date(2024, 5, 1),
			81,
		},
		{
			"Whole year",
			Date(2023, 1, 1),
			Date(2024, 1, 1),
			365,
		},
		{
			"Partial day is floored",
			time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 1, 3, 23, 59, 59, 0, time.UTC),
			2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DayDistance(tt.date1, tt.date2)
			if got != tt.want {
				t.Errorf("DayDistance(%v, %v) = %d, want %d", tt.date1, tt.date2, got, tt.want)
			}

			reverse := DayDistance(tt.date2, tt.date1)
			if reverse != got {
				t.Errorf("DayDistance is not symmetric: %d vs %d", got, reverse)
			}
		})
	}
}

func TestIsSameDay(t *testing.T) {
	tests := []struct {
		name  string
		date1 time.Time
		date2 time.Time
		want  bool
	}{
		{
			"Same date different time",
			time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
			time.Date(2025, 1, 15, 20, 0, 0, 0, time.UTC),
			true,
		},
		{
			"Different date",
			time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
			time.Date(2025, 1, 16, 10, 0, 0, 0, time.UTC),
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsSameDay(tt.date1, tt.date2)

			if result != tt.want {
				t.Errorf("IsSameDay(%v, %v) = %v, want %v",
					tt.date1, tt.date2, result, tt.want)
			}
		})
	}
}

func TestParseDateString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []int
		wantErr bool
	}{
		{"Date only", "2024-05-01", []int{2024, 5, 1}, false},
		{"Date and time", "2024-05-01 12:30:00", []int{2024, 5, 1, 12, 30, 0}, false},
		{"Leading zeros", "0999-01-02", []int{999, 1, 2}, false},
		{"Garbage", "bad-input", nil, true},
		{"Empty", "", nil, true},
		{"Single digit month", "2024-5-01", nil, true},
		{"Slash separator", "2024/05/01", nil, true},
		{"T separator", "2024-05-01T12:30:00", nil, true},
		{"Two spaces", "2024-05-01  12:30:00", nil, true},
		{"Trailing space", "2024-05-01 ", nil, true},
		{"Missing seconds", "2024-05-01 12:30", nil, true},
		{"Trailing newline", "2024-05-01\n", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDateString(tt.input)

			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDateString(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrInvalidDateString) {
				t.Errorf("ParseDateString(%q) error = %v, want ErrInvalidDateString", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseDateString(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr error
	}{
		{
			"ISO format YYYY-MM-DD",
			"2025-01-15",
			time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			nil,
		},
		{
			"With time",
			"2025-01-15 10:30:00",
			time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC),
			nil,
		},
		{
			"Impossible day",
			"2025-02-30",
			time.Time{},
			ErrInvalidDay,
		},
		{
			"Impossible month",
			"2025-13-01",
			time.Time{},
			ErrInvalidMonth,
		},
		{
			"Impossible hour",
			"2025-01-15 24:00:00",
			time.Time{},
			ErrInvalidDateString,
		},
		{
			"Russian format is rejected",
			"15.01.2025",
			time.Time{},
			ErrInvalidDateString,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseDate(tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ParseDate(%v) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseDate(%v) unexpected error = %v", tt.input, err)
			}
			if !result.Equal(tt.want) {
				t.Errorf("ParseDate(%v) = %v, want %v", tt.input, result, tt.want)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	input := time.Date(2025, 1, 5, 10, 30, 45, 0, time.UTC)

	if got := FormatDate(input); got != "2025-01-05" {
		t.Errorf("FormatDate(%v) = %v, want 2025-01-05", input, got)
	}
}

package lunar

import (
	"errors"
	"testing"
)

func TestCycles(t *testing.T) {
	tests := []struct {
		year   int
		stem   string
		branch string
		zodiac string
	}{
		{2010, "庚", "寅", "虎"},
		{2025, "乙", "巳", "蛇"},
		{2024, "甲", "辰", "龙"},
		{1984, "甲", "子", "鼠"},
		{2013, "癸", "巳", "蛇"}, // zero remainder maps to the last stem
		{2015, "乙", "未", "羊"},
		{1983, "癸", "亥", "猪"}, // zero remainder maps to the last branch
	}

	for _, tt := range tests {
		if got := HeavenlyStem(tt.year); got != tt.stem {
			t.Errorf("HeavenlyStem(%d) = %s, want %s", tt.year, got, tt.stem)
		}
		if got := EarthlyBranch(tt.year); got != tt.branch {
			t.Errorf("EarthlyBranch(%d) = %s, want %s", tt.year, got, tt.branch)
		}
		if got := Zodiac(tt.year); got != tt.zodiac {
			t.Errorf("Zodiac(%d) = %s, want %s", tt.year, got, tt.zodiac)
		}
	}

	if got := SexagenaryYear(2025); got != "乙巳" {
		t.Errorf("SexagenaryYear(2025) = %s, want 乙巳", got)
	}
}

func TestNameCycles(t *testing.T) {
	if got := HeavenlyStems(); got[0] != "甲" || got[9] != "癸" {
		t.Errorf("HeavenlyStems() = %v", got)
	}
	if got := EarthlyBranches(); got[0] != "子" || got[11] != "亥" {
		t.Errorf("EarthlyBranches() = %v", got)
	}
	if got := ZodiacAnimals(); got[0] != "鼠" || got[11] != "猪" {
		t.Errorf("ZodiacAnimals() = %v", got)
	}
	if got := MonthNames(); got[0] != "正" || got[12] != "腊" {
		t.Errorf("MonthNames() = %v", got)
	}
	if got := DayNames(); got[0] != "日" || got[13] != "卅" {
		t.Errorf("DayNames() = %v", got)
	}
	if got := SolarTerms(); got[0] != "立春" || got[21] != "冬至" || got[23] != "大寒" {
		t.Errorf("SolarTerms() = %v", got)
	}

	// The accessors hand out copies.
	stems := HeavenlyStems()
	stems[0] = "X"
	if HeavenlyStem(2014) != "甲" {
		t.Errorf("HeavenlyStems() copy leaked into package state")
	}
}

func TestMonthName(t *testing.T) {
	tests := []struct {
		month  int
		isLeap bool
		want   string
	}{
		{1, false, "正月"},
		{2, false, "二月"},
		{2, true, "闰二月"},
		{10, false, "十月"},
		{11, false, "冬月"},
		{12, false, "腊月"},
	}

	for _, tt := range tests {
		got, err := MonthName(tt.month, tt.isLeap)
		if err != nil {
			t.Fatalf("MonthName(%d, %v) error = %v", tt.month, tt.isLeap, err)
		}
		if got != tt.want {
			t.Errorf("MonthName(%d, %v) = %s, want %s", tt.month, tt.isLeap, got, tt.want)
		}
	}

	if _, err := MonthName(13, false); !errors.Is(err, ErrInvalidMonth) {
		t.Errorf("MonthName(13) error = %v, want ErrInvalidMonth", err)
	}
}

func TestDayName(t *testing.T) {
	tests := []struct {
		day  int
		want string
	}{
		{1, "初一"},
		{10, "初十"},
		{11, "十一"},
		{15, "十五"},
		{19, "十九"},
		{20, "二十"},
		{21, "廿一"},
		{29, "廿九"},
		{30, "三十"},
	}

	for _, tt := range tests {
		got, err := DayName(tt.day)
		if err != nil {
			t.Fatalf("DayName(%d) error = %v", tt.day, err)
		}
		if got != tt.want {
			t.Errorf("DayName(%d) = %s, want %s", tt.day, got, tt.want)
		}
	}

	for _, day := range []int{0, 31} {
		if _, err := DayName(day); !errors.Is(err, ErrInvalidDay) {
			t.Errorf("DayName(%d) error = %v, want ErrInvalidDay", day, err)
		}
	}
}

func TestParseYear(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr error
	}{
		{"2025", 2025, nil},
		{" 1891 ", 1891, nil},
		{"abc", 0, ErrInvalidInput},
		{"2025abc", 0, ErrInvalidInput},
		{"", 0, ErrInvalidInput},
		{"1890", 0, ErrInvalidYear},
		{"2101", 0, ErrInvalidYear},
	}

	for _, tt := range tests {
		got, err := ParseYear(tt.input)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseYear(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseYear(%q) = %d, %v; want %d", tt.input, got, err, tt.want)
		}
	}
}

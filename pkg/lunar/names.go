package lunar

var heavenlyStems = [10]string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}

var earthlyBranches = [12]string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}

var zodiacAnimals = [12]string{"鼠", "牛", "虎", "兔", "龙", "蛇", "马", "羊", "猴", "鸡", "狗", "猪"}

// monthNames[0] is 正 (month 1); monthNames[m] names month m for m >= 2.
var monthNames = [13]string{"正", "一", "二", "三", "四", "五", "六", "七", "八", "九", "十", "冬", "腊"}

// dayNames holds the digit glyphs 日,一..十 followed by the prefixes 初, 廿, 卅.
var dayNames = [14]string{"日", "一", "二", "三", "四", "五", "六", "七", "八", "九", "十", "初", "廿", "卅"}

var solarTerms = [24]string{
	"立春", "雨水", "惊蛰", "春分", "清明", "谷雨",
	"立夏", "小满", "芒种", "夏至", "小暑", "大暑",
	"立秋", "处暑", "白露", "秋分", "寒露", "霜降",
	"立冬", "小雪", "大雪", "冬至", "小寒", "大寒",
}

const (
	leapPrefix  = "闰"
	monthSuffix = "月"
	yearSuffix  = "年"

	dayPrefixEarly  = 11 // 初
	dayPrefixTwenty = 12 // 廿
)

// The accessors return copies so the cycles cannot be modified by callers.

// HeavenlyStems returns the 10 heavenly stems in cycle order
func HeavenlyStems() [10]string { return heavenlyStems }

// EarthlyBranches returns the 12 earthly branches in cycle order
func EarthlyBranches() [12]string { return earthlyBranches }

// ZodiacAnimals returns the 12 zodiac animals in cycle order
func ZodiacAnimals() [12]string { return zodiacAnimals }

// MonthNames returns the 13 lunar month glyphs
func MonthNames() [13]string { return monthNames }

// DayNames returns the 14 lunar day glyphs
func DayNames() [14]string { return dayNames }

// SolarTerms returns the 24 solar term names starting at 立春
func SolarTerms() [24]string { return solarTerms }

// MonthName returns the traditional name of a lunar month, e.g. 正月, 闰二月, 冬月, 腊月
func MonthName(month int, isLeap bool) (string, error) {
	if month < 1 || month > 12 {
		return "", invalidMonth(month)
	}

	name := monthNames[month]
	if month == 1 {
		name = monthNames[0]
	}
	name += monthSuffix

	if isLeap {
		name = leapPrefix + name
	}
	return name, nil
}

// DayName returns the traditional name of a lunar day, e.g. 初一, 十五, 廿三, 三十
func DayName(day int) (string, error) {
	switch {
	case day < 1 || day > 30:
		return "", invalidDay(day)
	case day <= 10:
		return dayNames[dayPrefixEarly] + dayNames[day], nil
	case day < 20:
		return dayNames[10] + dayNames[day-10], nil
	case day == 20:
		return dayNames[2] + dayNames[10], nil
	case day < 30:
		return dayNames[dayPrefixTwenty] + dayNames[day-20], nil
	default:
		return dayNames[3] + dayNames[10], nil
	}
}

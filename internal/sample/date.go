package sample

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Formats validators commonly use, mapped straight to Go layouts
var datePresets = map[string]string{
	"H:i":         "15:04",
	"Y-m-d":       "2006-01-02",
	"Y-m-d H:i:s": "2006-01-02 15:04:05",
}

// FormatDate renders t with a PHP date() style format string.
// A backslash escapes the next character; unknown characters are copied.
func FormatDate(t time.Time, format string) string {
	if layout, ok := datePresets[format]; ok {
		return t.Format(layout)
	}

	var b strings.Builder
	runes := []rune(format)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		if c == '\\' {
			if i+1 < len(runes) {
				i++
				b.WriteRune(runes[i])
			}
			continue
		}
		if s, ok := dateToken(t, c); ok {
			b.WriteString(s)
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

func dateToken(t time.Time, c rune) (string, bool) {
	switch c {
	// Day
	case 'd':
		return t.Format("02"), true
	case 'D':
		return t.Format("Mon"), true
	case 'j':
		return strconv.Itoa(t.Day()), true
	case 'l':
		return t.Format("Monday"), true
	case 'N':
		wd := int(t.Weekday())
		if wd == 0 {
			wd = 7
		}
		return strconv.Itoa(wd), true
	case 'S':
		return ordinalSuffix(t.Day()), true
	case 'w':
		return strconv.Itoa(int(t.Weekday())), true
	case 'z':
		return strconv.Itoa(t.YearDay() - 1), true

	// Week
	case 'W':
		_, week := t.ISOWeek()
		return pad2(week), true

	// Month
	case 'F':
		return t.Format("January"), true
	case 'm':
		return t.Format("01"), true
	case 'M':
		return t.Format("Jan"), true
	case 'n':
		return strconv.Itoa(int(t.Month())), true
	case 't':
		return strconv.Itoa(daysIn(t)), true

	// Year
	case 'L':
		if daysInYear(t.Year()) == 366 {
			return "1", true
		}
		return "0", true
	case 'o':
		year, _ := t.ISOWeek()
		return strconv.Itoa(year), true
	case 'Y':
		return strconv.Itoa(t.Year()), true
	case 'y':
		return t.Format("06"), true

	// Time
	case 'a':
		return t.Format("pm"), true
	case 'A':
		return t.Format("PM"), true
	case 'g':
		return t.Format("3"), true
	case 'G':
		return strconv.Itoa(t.Hour()), true
	case 'h':
		return t.Format("03"), true
	case 'H':
		return t.Format("15"), true
	case 'i':
		return t.Format("04"), true
	case 's':
		return t.Format("05"), true
	case 'u':
		return fmt.Sprintf("%06d", t.Nanosecond()/1000), true
	case 'v':
		return fmt.Sprintf("%03d", t.Nanosecond()/1000000), true

	// Timezone
	case 'e':
		return t.Location().String(), true
	case 'T':
		return t.Format("MST"), true
	case 'P':
		return t.Format("-07:00"), true
	case 'p':
		if _, offset := t.Zone(); offset == 0 {
			return "Z", true
		}
		return t.Format("-07:00"), true
	case 'O':
		return t.Format("-0700"), true
	case 'Z':
		_, offset := t.Zone()
		return strconv.Itoa(offset), true

	// Full date/time
	case 'c':
		return t.Format("2006-01-02T15:04:05-07:00"), true
	case 'r':
		return t.Format("Mon, 02 Jan 2006 15:04:05 -0700"), true
	case 'U':
		return strconv.FormatInt(t.Unix(), 10), true
	}
	return "", false
}

func ordinalSuffix(day int) string {
	if day >= 11 && day <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}

func daysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

func daysInYear(year int) int {
	return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC).YearDay()
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

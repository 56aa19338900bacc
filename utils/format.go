package utils

import (
	"fmt"
	"time"
)

// DaySuffix returns the English ordinal suffix for a day of the month.
// Days 11 through 13 always take "th".
func DaySuffix(day int) string {
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
	default:
		return "th"
	}
}

// DayLabel formats a timestamp as a chat date heading, e.g. "Sunday, Feb 19th".
func DayLabel(t time.Time) string {
	day := t.Day()
	return fmt.Sprintf("%s, %s %d%s", t.Format("Monday"), t.Format("Jan"), day, DaySuffix(day))
}

// ClockTime formats a timestamp as a 24-hour HH:MM stamp.
func ClockTime(t time.Time) string {
	return t.Format("15:04")
}

package reports

import (
	"fmt"
	"time"
)

// DayBounds returns the inclusive bounds of t's calendar day in t's
// location, 00:00:00 to 23:59:59.999.
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 0, 1).Add(-time.Millisecond)
	return start, end
}

// WeekRange returns the ISO week containing t, Monday 00:00:00 to
// Sunday 23:59:59.999.
func WeekRange(t time.Time) (time.Time, time.Time) {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()).AddDate(0, 0, -(weekday - 1))
	end := start.AddDate(0, 0, 7).Add(-time.Millisecond)
	return start, end
}

// MonthRange returns the calendar month containing t.
func MonthRange(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Millisecond)
	return start, end
}

// YearRange returns the calendar year bounds for year.
func YearRange(year int, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	end := start.AddDate(1, 0, 0).Add(-time.Millisecond)
	return start, end
}

// ISOWeekNumber returns the ISO 8601 week number for t.
func ISOWeekNumber(t time.Time) int {
	_, week := t.ISOWeek()
	return week
}

// GenerateTitle builds the default title for a report when the caller
// supplies none.
func GenerateTitle(reportType string, date time.Time) string {
	switch reportType {
	case TypeDaily:
		return fmt.Sprintf("Daily Report - %s", date.Format("January 2, 2006"))
	case TypeWeekly:
		start, end := WeekRange(date)
		return fmt.Sprintf("Weekly Report - %s - %s", start.Format("Jan 2"), end.Format("Jan 2, 2006"))
	case TypeMonthly:
		return fmt.Sprintf("Monthly Report - %s", date.Format("January 2006"))
	case TypeAnnual:
		return fmt.Sprintf("Annual Report - %d", date.Year())
	}
	return fmt.Sprintf("Report - %s", date.Format("January 2, 2006"))
}

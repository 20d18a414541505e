package reports

import (
	"testing"
	"time"
)

func TestDayBounds(t *testing.T) {
	at := time.Date(2024, time.March, 4, 13, 45, 12, 0, time.UTC)
	start, end := DayBounds(at)
	if !start.Equal(time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected day start: %v", start)
	}
	if !end.Equal(time.Date(2024, time.March, 4, 23, 59, 59, 999000000, time.UTC)) {
		t.Fatalf("unexpected day end: %v", end)
	}
}

func TestWeekRangeMonday(t *testing.T) {
	// 2024-03-06 is a Wednesday in ISO week 10.
	start, end := WeekRange(time.Date(2024, time.March, 6, 12, 0, 0, 0, time.UTC))
	if !start.Equal(time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected week to start Monday 2024-03-04, got %v", start)
	}
	if !end.Equal(time.Date(2024, time.March, 10, 23, 59, 59, 999000000, time.UTC)) {
		t.Fatalf("expected week to end Sunday 2024-03-10, got %v", end)
	}
}

func TestWeekRangeSundayStaysInWeek(t *testing.T) {
	start, _ := WeekRange(time.Date(2024, time.March, 10, 8, 0, 0, 0, time.UTC))
	if !start.Equal(time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("Sunday must belong to the week starting Monday 2024-03-04, got %v", start)
	}
}

func TestMonthRange(t *testing.T) {
	start, end := MonthRange(time.Date(2024, time.February, 14, 9, 0, 0, 0, time.UTC))
	if !start.Equal(time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected month start: %v", start)
	}
	if !end.Equal(time.Date(2024, time.February, 29, 23, 59, 59, 999000000, time.UTC)) {
		t.Fatalf("expected leap February to end on the 29th, got %v", end)
	}
}

func TestISOWeekNumber(t *testing.T) {
	if week := ISOWeekNumber(time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)); week != 10 {
		t.Fatalf("expected ISO week 10, got %d", week)
	}
}

func TestGenerateTitle(t *testing.T) {
	date := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)
	if got := GenerateTitle(TypeDaily, date); got != "Daily Report - March 4, 2024" {
		t.Fatalf("unexpected daily title: %q", got)
	}
	if got := GenerateTitle(TypeWeekly, date); got != "Weekly Report - Mar 4 - Mar 10, 2024" {
		t.Fatalf("unexpected weekly title: %q", got)
	}
	if got := GenerateTitle(TypeMonthly, date); got != "Monthly Report - March 2024" {
		t.Fatalf("unexpected monthly title: %q", got)
	}
	if got := GenerateTitle(TypeAnnual, date); got != "Annual Report - 2024" {
		t.Fatalf("unexpected annual title: %q", got)
	}
}

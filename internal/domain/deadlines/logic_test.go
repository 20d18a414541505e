package deadlines

import (
	"testing"
	"time"
)

func intPtr(v int) *int { return &v }

func TestNextOccurrenceDaily(t *testing.T) {
	rule := Deadline{Type: TypeDaily, DeadlineTime: "17:00"}

	morning := time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)
	next, err := NextOccurrence(rule, morning)
	if err != nil {
		t.Fatalf("NextOccurrence: %v", err)
	}
	if want := time.Date(2024, 3, 6, 17, 0, 0, 0, time.UTC); !next.Equal(want) {
		t.Errorf("same-day daily = %v, want %v", next, want)
	}

	evening := time.Date(2024, 3, 6, 19, 0, 0, 0, time.UTC)
	next, err = NextOccurrence(rule, evening)
	if err != nil {
		t.Fatalf("NextOccurrence: %v", err)
	}
	if want := time.Date(2024, 3, 7, 17, 0, 0, 0, time.UTC); !next.Equal(want) {
		t.Errorf("rolled daily = %v, want %v", next, want)
	}
}

func TestNextOccurrenceWeeklySameDay(t *testing.T) {
	// 2024-03-06 is a Wednesday (weekday 3).
	rule := Deadline{Type: TypeWeekly, DeadlineTime: "18:00", DayOfWeek: intPtr(3)}

	beforeTime := time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)
	next, err := NextOccurrence(rule, beforeTime)
	if err != nil {
		t.Fatalf("NextOccurrence: %v", err)
	}
	if want := time.Date(2024, 3, 6, 18, 0, 0, 0, time.UTC); !next.Equal(want) {
		t.Errorf("same-day weekly = %v, want %v", next, want)
	}

	afterTime := time.Date(2024, 3, 6, 19, 0, 0, 0, time.UTC)
	next, err = NextOccurrence(rule, afterTime)
	if err != nil {
		t.Fatalf("NextOccurrence: %v", err)
	}
	if want := time.Date(2024, 3, 13, 18, 0, 0, 0, time.UTC); !next.Equal(want) {
		t.Errorf("rolled weekly = %v, want %v", next, want)
	}
}

func TestNextOccurrenceWeeklyOtherDay(t *testing.T) {
	// Friday deadline evaluated on a Wednesday.
	rule := Deadline{Type: TypeWeekly, DeadlineTime: "17:00", DayOfWeek: intPtr(5)}
	now := time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)

	next, err := NextOccurrence(rule, now)
	if err != nil {
		t.Fatalf("NextOccurrence: %v", err)
	}
	if want := time.Date(2024, 3, 8, 17, 0, 0, 0, time.UTC); !next.Equal(want) {
		t.Errorf("weekly = %v, want %v", next, want)
	}
}

func TestNextOccurrenceMonthly(t *testing.T) {
	rule := Deadline{Type: TypeMonthly, DeadlineTime: "12:00", DayOfMonth: intPtr(15)}

	before := time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)
	next, err := NextOccurrence(rule, before)
	if err != nil {
		t.Fatalf("NextOccurrence: %v", err)
	}
	if want := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC); !next.Equal(want) {
		t.Errorf("this-month = %v, want %v", next, want)
	}

	after := time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC)
	next, err = NextOccurrence(rule, after)
	if err != nil {
		t.Fatalf("NextOccurrence: %v", err)
	}
	if want := time.Date(2024, 4, 15, 12, 0, 0, 0, time.UTC); !next.Equal(want) {
		t.Errorf("next-month = %v, want %v", next, want)
	}
}

func TestNextOccurrenceMonthlyOverflow(t *testing.T) {
	// dayOfMonth=31 evaluated in April normalises into May.
	rule := Deadline{Type: TypeMonthly, DeadlineTime: "09:00", DayOfMonth: intPtr(31)}
	now := time.Date(2024, 4, 10, 10, 0, 0, 0, time.UTC)

	next, err := NextOccurrence(rule, now)
	if err != nil {
		t.Fatalf("NextOccurrence: %v", err)
	}
	if want := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC); !next.Equal(want) {
		t.Errorf("overflow = %v, want %v", next, want)
	}
}

func TestNextOccurrenceInvalidRules(t *testing.T) {
	cases := []Deadline{
		{Type: TypeWeekly, DeadlineTime: "17:00"},
		{Type: TypeMonthly, DeadlineTime: "17:00"},
		{Type: "quarterly", DeadlineTime: "17:00"},
		{Type: TypeDaily, DeadlineTime: "25:00"},
		{Type: TypeDaily, DeadlineTime: "bogus"},
	}
	now := time.Now()
	for _, rule := range cases {
		if _, err := NextOccurrence(rule, now); err == nil {
			t.Errorf("NextOccurrence(%+v) expected error", rule)
		}
	}
}

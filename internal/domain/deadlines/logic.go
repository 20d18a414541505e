package deadlines

import (
	"fmt"
	"time"
)

// NextOccurrence computes the next time a rule falls due, strictly
// after now.
//
// Weekly rules pick today when the rule's weekday matches and the
// clock time has not yet passed; otherwise they roll a full week.
// Monthly rules rely on time.Date normalisation, so dayOfMonth=31 in
// a 30-day month lands on the 1st of the following month.
func NextOccurrence(rule Deadline, now time.Time) (time.Time, error) {
	hour, minute, err := parseClock(rule.DeadlineTime)
	if err != nil {
		return time.Time{}, err
	}

	at := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), hour, minute, 0, 0, t.Location())
	}

	var next time.Time
	switch rule.Type {
	case TypeDaily:
		next = at(now)
		if !next.After(now) {
			next = next.AddDate(0, 0, 1)
		}

	case TypeWeekly:
		if rule.DayOfWeek == nil {
			return time.Time{}, fmt.Errorf("%w: weekly rule without dayOfWeek", ErrInvalidRule)
		}
		delta := (*rule.DayOfWeek - int(now.Weekday()) + 7) % 7
		if delta == 0 && !at(now).After(now) {
			delta = 7
		}
		next = at(now.AddDate(0, 0, delta))

	case TypeMonthly:
		if rule.DayOfMonth == nil {
			return time.Time{}, fmt.Errorf("%w: monthly rule without dayOfMonth", ErrInvalidRule)
		}
		next = time.Date(now.Year(), now.Month(), *rule.DayOfMonth, hour, minute, 0, 0, now.Location())
		if !next.After(now) {
			next = time.Date(now.Year(), now.Month()+1, *rule.DayOfMonth, hour, minute, 0, 0, now.Location())
		}

	default:
		return time.Time{}, fmt.Errorf("%w: unknown type %q", ErrInvalidRule, rule.Type)
	}

	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next, nil
}

func parseClock(value string) (hour, minute int, err error) {
	if _, err := fmt.Sscanf(value, "%d:%d", &hour, &minute); err != nil {
		return 0, 0, fmt.Errorf("%w: bad deadline time %q", ErrInvalidRule, value)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: bad deadline time %q", ErrInvalidRule, value)
	}
	return hour, minute, nil
}

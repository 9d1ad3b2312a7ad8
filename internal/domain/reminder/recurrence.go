package reminder

import (
	"fmt"
	"strings"
	"time"
)

type Recurrence string

const (
	RecurrenceNone    Recurrence = "none"
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
	RecurrenceYearly  Recurrence = "yearly"
)

// Recurrences lists every recurrence in the order the menu shows them.
var Recurrences = []Recurrence{
	RecurrenceNone,
	RecurrenceDaily,
	RecurrenceWeekly,
	RecurrenceMonthly,
	RecurrenceYearly,
}

func ParseRecurrence(s string) (Recurrence, error) {
	r := Recurrence(strings.ToLower(strings.TrimSpace(s)))
	if r == "" {
		return RecurrenceNone, nil
	}
	for _, known := range Recurrences {
		if r == known {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRecurrence, s)
}

// Repeats is false only for one-shot reminders.
func (r Recurrence) Repeats() bool {
	return r != RecurrenceNone && r != ""
}

// Label is the capitalised form used in select menus.
func (r Recurrence) Label() string {
	if r == "" {
		return "None"
	}
	return strings.ToUpper(string(r[:1])) + string(r[1:])
}

// Next advances t by one period. The arithmetic is done in UTC so daylight saving
// shifts in the owner's zone never move the wall clock of a stored reminder.
// Months and years are calendar-aware and clamp to the last day of the target month.
func (r Recurrence) Next(t time.Time) time.Time {
	t = t.UTC()
	switch r {
	case RecurrenceDaily:
		return t.AddDate(0, 0, 1)
	case RecurrenceWeekly:
		return t.AddDate(0, 0, 7)
	case RecurrenceMonthly:
		return addMonths(t, 1)
	case RecurrenceYearly:
		return addMonths(t, 12)
	default:
		return t
	}
}

func addMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := daysIn(first.Year(), first.Month()); d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

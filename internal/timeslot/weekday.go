package timeslot

import (
	"fmt"
	"strings"
	"time"
)

// Weekdays lists the seven canonical weekday names accepted on the wire,
// Sunday first to mirror time.Weekday ordering.
var Weekdays = []string{
	"Sunday",
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
}

// ParseWeekday resolves a canonical weekday name (case-insensitive) to its
// time.Weekday value.
func ParseWeekday(name string) (time.Weekday, error) {
	trimmed := strings.TrimSpace(name)
	for i, candidate := range Weekdays {
		if strings.EqualFold(candidate, trimmed) {
			return time.Weekday(i), nil
		}
	}
	return time.Sunday, fmt.Errorf("timeslot: invalid weekday %q", name)
}

// WeekdayName returns the canonical name for the weekday of t. Go derives
// weekdays arithmetically, so the result does not depend on locale settings.
func WeekdayName(t time.Time) string {
	return Weekdays[int(t.Weekday())]
}

// NormalizeWeekdays validates a caller supplied weekday set and returns the
// canonical spellings with duplicates removed, preserving first-seen order.
func NormalizeWeekdays(days []string) ([]string, error) {
	if len(days) == 0 {
		return nil, nil
	}

	seen := make(map[time.Weekday]bool, len(days))
	out := make([]string, 0, len(days))
	for _, day := range days {
		weekday, err := ParseWeekday(day)
		if err != nil {
			return nil, err
		}
		if seen[weekday] {
			continue
		}
		seen[weekday] = true
		out = append(out, Weekdays[int(weekday)])
	}
	return out, nil
}

// ContainsWeekday reports whether the set holds the given canonical name.
func ContainsWeekday(days []string, name string) bool {
	for _, day := range days {
		if strings.EqualFold(day, name) {
			return true
		}
	}
	return false
}

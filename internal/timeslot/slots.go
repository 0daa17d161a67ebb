// Package timeslot provides the pure time arithmetic behind availability
// windows: clock values, canonical weekday handling, and bookable slot
// enumeration. Nothing in this package touches storage or the request
// context; callers validate configuration upstream.
package timeslot

// DefaultStepMinutes is the slot granularity applied when an availability
// record does not carry an explicit meeting duration.
const DefaultStepMinutes = 30

// Slots enumerates the bookable start times inside the half-open window
// [start, end), stepping by stepMinutes. The first slot is start itself and
// no slot reaches end, so a partial trailing interval is simply excluded.
// A degenerate window (start >= end) or non-positive step yields no slots.
func Slots(start, end Clock, stepMinutes int) []string {
	if stepMinutes <= 0 || !start.Before(end) {
		return nil
	}

	var out []string
	for current := start; current.Before(end); current = current.Add(stepMinutes) {
		out = append(out, current.String())
	}
	return out
}

// Contains reports whether the clock value lies inside the half-open
// availability window [start, end): the lower bound is bookable, the upper
// bound is not.
func Contains(start, end, value Clock) bool {
	return value.Minutes() >= start.Minutes() && value.Minutes() < end.Minutes()
}

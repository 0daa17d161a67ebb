package timeslot

import (
	"fmt"
	"regexp"
	"strconv"
)

// clockPattern matches the strict two-digit HH:MM form used on the wire.
var clockPattern = regexp.MustCompile(`^\d{2}:\d{2}$`)

// Clock is a time-of-day value with minute precision. Clocks compare by
// (hour, minute) and are independent of any calendar date or location.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses a strict "HH:MM" string into a Clock.
func ParseClock(value string) (Clock, error) {
	if !clockPattern.MatchString(value) {
		return Clock{}, fmt.Errorf("timeslot: invalid clock value %q", value)
	}

	hour, err := strconv.Atoi(value[:2])
	if err != nil {
		return Clock{}, fmt.Errorf("timeslot: invalid clock value %q", value)
	}
	minute, err := strconv.Atoi(value[3:])
	if err != nil {
		return Clock{}, fmt.Errorf("timeslot: invalid clock value %q", value)
	}

	if hour > 23 || minute > 59 {
		return Clock{}, fmt.Errorf("timeslot: clock value %q out of range", value)
	}

	return Clock{Hour: hour, Minute: minute}, nil
}

// Minutes returns the clock position as minutes since midnight.
func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

// Before reports whether c is strictly earlier than other.
func (c Clock) Before(other Clock) bool {
	return c.Minutes() < other.Minutes()
}

// Add advances the clock by the given number of minutes, carrying minutes
// into hours. The result is not wrapped at midnight; callers bound slot
// enumeration by an end clock instead.
func (c Clock) Add(minutes int) Clock {
	total := c.Minutes() + minutes
	return Clock{Hour: total / 60, Minute: total % 60}
}

// String renders the clock as zero-padded "HH:MM".
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

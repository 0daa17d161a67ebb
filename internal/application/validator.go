package application

import (
	"context"
	"errors"
	"time"

	"github.com/example/slot-scheduler/internal/timeslot"
)

const dateLayout = "2006-01-02"

// NormalizeDate parses a calendar date and renders it in the canonical
// YYYY-MM-DD form used as part of the slot key. RFC 3339 timestamps are
// accepted and reduced to their date.
func NormalizeDate(value string) (time.Time, string, error) {
	if parsed, err := time.Parse(dateLayout, value); err == nil {
		return parsed, parsed.Format(dateLayout), nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		parsed = parsed.UTC()
		return parsed, parsed.Format(dateLayout), nil
	}
	return time.Time{}, "", validationError("Invalid date format")
}

// ConflictValidator decides whether a requested slot can be booked against
// an organizer's availability and existing meetings.
type ConflictValidator struct {
	availabilities AvailabilityStore
	meetings       MeetingStore
}

// NewConflictValidator builds a ConflictValidator.
func NewConflictValidator(availabilities AvailabilityStore, meetings MeetingStore) *ConflictValidator {
	return &ConflictValidator{availabilities: availabilities, meetings: meetings}
}

// ValidateBooking runs the booking checks in a fixed order, stopping at the
// first failure: date format, time format, slot occupancy, weekday
// availability, then window containment.
func (v *ConflictValidator) ValidateBooking(ctx context.Context, date, timeOfDay, organizerID string) error {
	parsedDate, normalizedDate, err := NormalizeDate(date)
	if err != nil {
		return err
	}

	requested, err := timeslot.ParseClock(timeOfDay)
	if err != nil {
		return validationError("Invalid time format")
	}

	if _, err := v.meetings.GetMeetingBySlot(ctx, organizerID, normalizedDate, requested.String()); err == nil {
		return ErrSlotTaken
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	availability, err := v.availabilities.GetAvailabilityForDay(ctx, organizerID, timeslot.WeekdayName(parsedDate))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNoAvailability
		}
		return err
	}

	start, err := timeslot.ParseClock(availability.StartTime)
	if err != nil {
		return err
	}
	end, err := timeslot.ParseClock(availability.EndTime)
	if err != nil {
		return err
	}
	if !timeslot.Contains(start, end, requested) {
		return ErrOutsideAvailability
	}

	return nil
}

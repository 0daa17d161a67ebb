package application

import (
	"context"
	"errors"
	"testing"
)

// 2025-06-02 is a Monday.
const mondayDate = "2025-06-02"

func newValidatorFixture() (*ConflictValidator, *stubAvailabilityStore, *stubMeetingStore) {
	availabilities := &stubAvailabilityStore{records: []Availability{{
		ID:        "avail-1",
		UserID:    "user-alice",
		StartTime: "09:00",
		EndTime:   "17:00",
		Days:      []string{"Monday", "Wednesday"},
		Duration:  30,
	}}}
	meetings := &stubMeetingStore{}
	return NewConflictValidator(availabilities, meetings), availabilities, meetings
}

func TestValidateBooking(t *testing.T) {
	t.Parallel()

	t.Run("accepts a slot inside the window", func(t *testing.T) {
		t.Parallel()

		validator, _, _ := newValidatorFixture()
		if err := validator.ValidateBooking(context.Background(), mondayDate, "09:00", "user-alice"); err != nil {
			t.Fatalf("ValidateBooking: %v", err)
		}
	})

	t.Run("rejects malformed dates before anything else", func(t *testing.T) {
		t.Parallel()

		validator, _, _ := newValidatorFixture()
		err := validator.ValidateBooking(context.Background(), "06/02/2025", "09:00", "user-alice")
		if ErrorKind(err) != "validation" {
			t.Fatalf("expected a validation error, got %v", err)
		}
	})

	t.Run("rejects malformed times", func(t *testing.T) {
		t.Parallel()

		validator, _, _ := newValidatorFixture()
		err := validator.ValidateBooking(context.Background(), mondayDate, "9am", "user-alice")
		if ErrorKind(err) != "validation" {
			t.Fatalf("expected a validation error, got %v", err)
		}
	})

	t.Run("reports an occupied slot", func(t *testing.T) {
		t.Parallel()

		validator, _, meetings := newValidatorFixture()
		meetings.meetings = append(meetings.meetings, Meeting{
			ID: "m-1", OrganizerID: "user-alice", Date: mondayDate, Time: "10:00", Status: StatusAccepted,
		})

		err := validator.ValidateBooking(context.Background(), mondayDate, "10:00", "user-alice")
		if !errors.Is(err, ErrSlotTaken) {
			t.Fatalf("expected ErrSlotTaken, got %v", err)
		}
	})

	t.Run("occupied slot wins over a missing window", func(t *testing.T) {
		t.Parallel()

		// Tuesday is outside the availability, but the slot check runs first.
		validator, _, meetings := newValidatorFixture()
		meetings.meetings = append(meetings.meetings, Meeting{
			ID: "m-1", OrganizerID: "user-alice", Date: "2025-06-03", Time: "10:00", Status: StatusAccepted,
		})

		err := validator.ValidateBooking(context.Background(), "2025-06-03", "10:00", "user-alice")
		if !errors.Is(err, ErrSlotTaken) {
			t.Fatalf("expected ErrSlotTaken, got %v", err)
		}
	})

	t.Run("reports an uncovered weekday", func(t *testing.T) {
		t.Parallel()

		validator, _, _ := newValidatorFixture()
		err := validator.ValidateBooking(context.Background(), "2025-06-03", "10:00", "user-alice")
		if !errors.Is(err, ErrNoAvailability) {
			t.Fatalf("expected ErrNoAvailability, got %v", err)
		}
	})

	t.Run("window bounds are inclusive start, exclusive end", func(t *testing.T) {
		t.Parallel()

		validator, _, _ := newValidatorFixture()
		if err := validator.ValidateBooking(context.Background(), mondayDate, "09:00", "user-alice"); err != nil {
			t.Fatalf("start bound should be bookable: %v", err)
		}
		if err := validator.ValidateBooking(context.Background(), mondayDate, "16:59", "user-alice"); err != nil {
			t.Fatalf("last minute inside the window should be bookable: %v", err)
		}
		if err := validator.ValidateBooking(context.Background(), mondayDate, "17:00", "user-alice"); !errors.Is(err, ErrOutsideAvailability) {
			t.Fatalf("end bound should be rejected, got %v", err)
		}
		if err := validator.ValidateBooking(context.Background(), mondayDate, "08:59", "user-alice"); !errors.Is(err, ErrOutsideAvailability) {
			t.Fatalf("time before the window should be rejected, got %v", err)
		}
	})

	t.Run("normalizes RFC 3339 dates to the slot key", func(t *testing.T) {
		t.Parallel()

		validator, _, meetings := newValidatorFixture()
		meetings.meetings = append(meetings.meetings, Meeting{
			ID: "m-1", OrganizerID: "user-alice", Date: mondayDate, Time: "10:00", Status: StatusAccepted,
		})

		err := validator.ValidateBooking(context.Background(), mondayDate+"T00:00:00Z", "10:00", "user-alice")
		if !errors.Is(err, ErrSlotTaken) {
			t.Fatalf("expected ErrSlotTaken for the timestamp form, got %v", err)
		}
	})
}

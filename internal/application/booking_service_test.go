package application

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func newBookingFixture() (*BookingService, *stubMeetingStore) {
	availabilities := &stubAvailabilityStore{records: []Availability{{
		ID:        "avail-1",
		UserID:    "user-alice",
		StartTime: "09:00",
		EndTime:   "17:00",
		Days:      []string{"Monday"},
		Duration:  30,
	}}}
	meetings := &stubMeetingStore{}
	service := NewBookingService(
		NewConflictValidator(availabilities, meetings),
		availabilities,
		meetings,
		stubLinks{base: "https://app.example.com"},
		nil,
	)
	service.idGenerator = sequentialIDs("meeting")
	return service, meetings
}

func bookingParams() BookMeetingParams {
	return BookMeetingParams{
		Title:          "Intro call",
		Date:           mondayDate,
		Time:           "10:00",
		RequesterName:  "Bob",
		RequesterEmail: "bob@example.com",
		Notes:          "Agenda attached",
		OrganizerID:    "user-alice",
	}
}

func TestBookMeeting(t *testing.T) {
	t.Parallel()

	t.Run("persists an accepted meeting with its link", func(t *testing.T) {
		t.Parallel()

		service, meetings := newBookingFixture()
		result, err := service.BookMeeting(context.Background(), bookingParams())
		if err != nil {
			t.Fatalf("BookMeeting: %v", err)
		}
		if result.Meeting.Status != StatusAccepted {
			t.Fatalf("status = %q, want %q", result.Meeting.Status, StatusAccepted)
		}
		if want := "https://app.example.com/meeting/meeting-1"; result.Link != want {
			t.Fatalf("link = %q, want %q", result.Link, want)
		}
		if len(meetings.meetings) != 1 {
			t.Fatalf("expected one stored meeting, got %d", len(meetings.meetings))
		}
	})

	t.Run("rejects a second booking of the same slot", func(t *testing.T) {
		t.Parallel()

		service, _ := newBookingFixture()
		if _, err := service.BookMeeting(context.Background(), bookingParams()); err != nil {
			t.Fatalf("first BookMeeting: %v", err)
		}

		params := bookingParams()
		params.RequesterName = "Carol"
		params.RequesterEmail = "carol@example.com"
		if _, err := service.BookMeeting(context.Background(), params); !errors.Is(err, ErrSlotTaken) {
			t.Fatalf("expected ErrSlotTaken, got %v", err)
		}
	})

	t.Run("maps a losing race on the slot index to slot taken", func(t *testing.T) {
		t.Parallel()

		service, meetings := newBookingFixture()
		meetings.createErr = ErrAlreadyExists

		if _, err := service.BookMeeting(context.Background(), bookingParams()); !errors.Is(err, ErrSlotTaken) {
			t.Fatalf("expected ErrSlotTaken, got %v", err)
		}
	})

	t.Run("rejects incomplete requests", func(t *testing.T) {
		t.Parallel()

		service, meetings := newBookingFixture()
		mutations := map[string]func(*BookMeetingParams){
			"no title":     func(p *BookMeetingParams) { p.Title = " " },
			"no date":      func(p *BookMeetingParams) { p.Date = "" },
			"no time":      func(p *BookMeetingParams) { p.Time = "" },
			"no name":      func(p *BookMeetingParams) { p.RequesterName = "" },
			"no email":     func(p *BookMeetingParams) { p.RequesterEmail = "" },
			"bad email":    func(p *BookMeetingParams) { p.RequesterEmail = "not-an-address" },
			"no organizer": func(p *BookMeetingParams) { p.OrganizerID = "" },
		}
		for name, mutate := range mutations {
			params := bookingParams()
			mutate(&params)
			if _, err := service.BookMeeting(context.Background(), params); ErrorKind(err) != "validation" {
				t.Errorf("%s: expected a validation error, got %v", name, err)
			}
		}
		if len(meetings.meetings) != 0 {
			t.Fatalf("expected no stored meetings, got %d", len(meetings.meetings))
		}
	})

	t.Run("rejects times outside the window", func(t *testing.T) {
		t.Parallel()

		service, _ := newBookingFixture()
		params := bookingParams()
		params.Time = "18:00"
		if _, err := service.BookMeeting(context.Background(), params); !errors.Is(err, ErrOutsideAvailability) {
			t.Fatalf("expected ErrOutsideAvailability, got %v", err)
		}
	})
}

func TestPublicDaySlots(t *testing.T) {
	t.Parallel()

	service, _ := newBookingFixture()

	schedule, err := service.PublicDaySlots(context.Background(), mondayDate)
	if err != nil {
		t.Fatalf("PublicDaySlots: %v", err)
	}
	if len(schedule.TimeSlots) != 16 {
		t.Fatalf("expected 16 half-hour slots between 09:00 and 17:00, got %d", len(schedule.TimeSlots))
	}
	if want := []string{"09:00", "09:30"}; !reflect.DeepEqual(schedule.TimeSlots[:2], want) {
		t.Fatalf("first slots = %v, want %v", schedule.TimeSlots[:2], want)
	}

	if _, err := service.PublicDaySlots(context.Background(), "2025-06-01"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for an uncovered Sunday, got %v", err)
	}
	if _, err := service.PublicDaySlots(context.Background(), "someday"); ErrorKind(err) != "validation" {
		t.Fatal("expected a validation error for a malformed date")
	}
}

func TestMeetingDetails(t *testing.T) {
	t.Parallel()

	service, meetings := newBookingFixture()
	result, err := service.BookMeeting(context.Background(), bookingParams())
	if err != nil {
		t.Fatalf("BookMeeting: %v", err)
	}

	meeting, err := service.MeetingDetails(context.Background(), result.Meeting.ID)
	if err != nil {
		t.Fatalf("MeetingDetails: %v", err)
	}
	if meeting.Title != "Intro call" {
		t.Fatalf("unexpected meeting: %+v", meeting)
	}

	meetings.meetings = nil
	if _, err := service.MeetingDetails(context.Background(), result.Meeting.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

package application

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func newAvailabilityService(store *stubAvailabilityStore) *AvailabilityService {
	service := NewAvailabilityService(store, stubLinks{base: "https://app.example.com"}, nil)
	service.idGenerator = sequentialIDs("avail")
	return service
}

func alicePrincipal() Principal {
	return Principal{UserID: "user-alice", Name: "Alice", Email: "alice@example.com", TimeZone: "UTC"}
}

func TestSetAvailability(t *testing.T) {
	t.Parallel()

	t.Run("saves a normalized window", func(t *testing.T) {
		t.Parallel()

		store := &stubAvailabilityStore{}
		service := newAvailabilityService(store)

		availability, err := service.SetAvailability(context.Background(), SetAvailabilityParams{
			Principal: alicePrincipal(),
			Input: AvailabilityInput{
				StartTime: "09:00",
				EndTime:   "17:00",
				Days:      []string{"monday", "Wednesday", "monday"},
			},
		})
		if err != nil {
			t.Fatalf("SetAvailability: %v", err)
		}
		if got, want := availability.Days, []string{"Monday", "Wednesday"}; !reflect.DeepEqual(got, want) {
			t.Fatalf("days = %v, want %v", got, want)
		}
		if availability.Duration != 30 {
			t.Fatalf("expected the default duration, got %d", availability.Duration)
		}
	})

	t.Run("keeps the duration across window updates", func(t *testing.T) {
		t.Parallel()

		store := &stubAvailabilityStore{}
		service := newAvailabilityService(store)
		principal := alicePrincipal()

		if _, err := service.SetAvailability(context.Background(), SetAvailabilityParams{
			Principal: principal,
			Input:     AvailabilityInput{StartTime: "09:00", EndTime: "17:00", Days: []string{"Monday"}, Duration: 45},
		}); err != nil {
			t.Fatalf("SetAvailability: %v", err)
		}

		updated, err := service.SetAvailability(context.Background(), SetAvailabilityParams{
			Principal: principal,
			Input:     AvailabilityInput{StartTime: "10:00", EndTime: "16:00", Days: []string{"Tuesday"}},
		})
		if err != nil {
			t.Fatalf("SetAvailability update: %v", err)
		}
		if updated.Duration != 45 {
			t.Fatalf("duration = %d, want 45", updated.Duration)
		}
		if len(store.records) != 1 {
			t.Fatalf("expected one record, got %d", len(store.records))
		}
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		t.Parallel()

		service := newAvailabilityService(&stubAvailabilityStore{})

		cases := map[string]AvailabilityInput{
			"no days":         {StartTime: "09:00", EndTime: "17:00"},
			"unknown day":     {StartTime: "09:00", EndTime: "17:00", Days: []string{"Someday"}},
			"bad start":       {StartTime: "9am", EndTime: "17:00", Days: []string{"Monday"}},
			"bad end":         {StartTime: "09:00", EndTime: "25:00", Days: []string{"Monday"}},
			"inverted window": {StartTime: "17:00", EndTime: "09:00", Days: []string{"Monday"}},
			"empty window":    {StartTime: "09:00", EndTime: "09:00", Days: []string{"Monday"}},
		}
		for name, input := range cases {
			_, err := service.SetAvailability(context.Background(), SetAvailabilityParams{Principal: alicePrincipal(), Input: input})
			if ErrorKind(err) != "validation" {
				t.Errorf("%s: expected a validation error, got %v", name, err)
			}
		}
	})
}

func TestDaySlots(t *testing.T) {
	t.Parallel()

	store := &stubAvailabilityStore{}
	service := newAvailabilityService(store)
	principal := alicePrincipal()

	if _, err := service.SetAvailability(context.Background(), SetAvailabilityParams{
		Principal: principal,
		Input:     AvailabilityInput{StartTime: "09:00", EndTime: "10:30", Days: []string{"Monday"}},
	}); err != nil {
		t.Fatalf("SetAvailability: %v", err)
	}

	t.Run("enumerates slot starts", func(t *testing.T) {
		t.Parallel()

		schedule, err := service.DaySlots(context.Background(), principal, "monday")
		if err != nil {
			t.Fatalf("DaySlots: %v", err)
		}
		want := []string{"09:00", "09:30", "10:00"}
		if !reflect.DeepEqual(schedule.TimeSlots, want) {
			t.Fatalf("slots = %v, want %v", schedule.TimeSlots, want)
		}
	})

	t.Run("reports uncovered weekdays as not found", func(t *testing.T) {
		t.Parallel()

		if _, err := service.DaySlots(context.Background(), principal, "Sunday"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("rejects unknown weekday names", func(t *testing.T) {
		t.Parallel()

		if _, err := service.DaySlots(context.Background(), principal, "Caturday"); ErrorKind(err) != "validation" {
			t.Fatal("expected a validation error")
		}
	})
}

func TestSetMeetingDuration(t *testing.T) {
	t.Parallel()

	store := &stubAvailabilityStore{}
	service := newAvailabilityService(store)
	principal := alicePrincipal()

	if _, err := service.SetMeetingDuration(context.Background(), principal, 45); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound without a window, got %v", err)
	}

	if _, err := service.SetAvailability(context.Background(), SetAvailabilityParams{
		Principal: principal,
		Input:     AvailabilityInput{StartTime: "09:00", EndTime: "12:00", Days: []string{"Monday"}},
	}); err != nil {
		t.Fatalf("SetAvailability: %v", err)
	}

	updated, err := service.SetMeetingDuration(context.Background(), principal, 60)
	if err != nil {
		t.Fatalf("SetMeetingDuration: %v", err)
	}
	if updated.Duration != 60 {
		t.Fatalf("duration = %d, want 60", updated.Duration)
	}

	schedule, err := service.DaySlots(context.Background(), principal, "Monday")
	if err != nil {
		t.Fatalf("DaySlots: %v", err)
	}
	if want := []string{"09:00", "10:00", "11:00"}; !reflect.DeepEqual(schedule.TimeSlots, want) {
		t.Fatalf("slots = %v, want %v", schedule.TimeSlots, want)
	}

	if _, err := service.SetMeetingDuration(context.Background(), principal, 0); ErrorKind(err) != "validation" {
		t.Fatal("expected a validation error for a zero duration")
	}
}

func TestBookingLink(t *testing.T) {
	t.Parallel()

	service := newAvailabilityService(&stubAvailabilityStore{})
	if got, want := service.BookingLink(alicePrincipal()), "https://app.example.com/book/user-alice"; got != want {
		t.Fatalf("BookingLink = %q, want %q", got, want)
	}
}

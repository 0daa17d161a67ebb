package application

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/example/slot-scheduler/internal/timeslot"
)

// AvailabilityService manages recurring weekly availability windows and the
// slot schedules derived from them.
type AvailabilityService struct {
	availabilities AvailabilityStore
	links          LinkBuilder
	idGenerator    func() string
	logger         *slog.Logger
}

// NewAvailabilityService builds an AvailabilityService.
func NewAvailabilityService(availabilities AvailabilityStore, links LinkBuilder, logger *slog.Logger) *AvailabilityService {
	return &AvailabilityService{
		availabilities: availabilities,
		links:          links,
		idGenerator:    uuid.NewString,
		logger:         defaultLogger(logger),
	}
}

// SetAvailability creates or replaces the caller's availability window. The
// meeting duration survives a window update unless the input sets one.
func (s *AvailabilityService) SetAvailability(ctx context.Context, params SetAvailabilityParams) (Availability, error) {
	logger := serviceLogger(ctx, s.logger, "availability", "set", "user_id", params.Principal.UserID)

	input := params.Input
	if len(input.Days) == 0 {
		return Availability{}, validationError("At least one day is required")
	}
	days, err := timeslot.NormalizeWeekdays(input.Days)
	if err != nil {
		return Availability{}, validationError("Invalid day of the week")
	}

	start, err := timeslot.ParseClock(input.StartTime)
	if err != nil {
		return Availability{}, validationError("Invalid time format")
	}
	end, err := timeslot.ParseClock(input.EndTime)
	if err != nil {
		return Availability{}, validationError("Invalid time format")
	}
	if !start.Before(end) {
		return Availability{}, validationError("Start time must be earlier than end time")
	}
	if input.Duration < 0 {
		return Availability{}, validationError("Meeting duration must be a positive number of minutes")
	}

	duration := input.Duration
	if duration == 0 {
		duration = timeslot.DefaultStepMinutes
		if existing, err := s.availabilities.GetAvailabilityByOwner(ctx, params.Principal.UserID); err == nil {
			duration = existing.Duration
		} else if !errors.Is(err, ErrNotFound) {
			return Availability{}, err
		}
	}

	availability, err := s.availabilities.UpsertAvailability(ctx, Availability{
		ID:        s.idGenerator(),
		UserID:    params.Principal.UserID,
		StartTime: start.String(),
		EndTime:   end.String(),
		Days:      days,
		Duration:  duration,
	})
	if err != nil {
		return Availability{}, err
	}

	logger.Info("availability saved", "days", len(availability.Days))
	return availability, nil
}

// GetAvailability returns the caller's availability window.
func (s *AvailabilityService) GetAvailability(ctx context.Context, principal Principal) (Availability, error) {
	return s.availabilities.GetAvailabilityByOwner(ctx, principal.UserID)
}

// DaySlots enumerates the caller's bookable slot start times on one weekday.
func (s *AvailabilityService) DaySlots(ctx context.Context, principal Principal, day string) (DaySchedule, error) {
	weekday, err := timeslot.ParseWeekday(day)
	if err != nil {
		return DaySchedule{}, validationError("Invalid day of the week")
	}

	availability, err := s.availabilities.GetAvailabilityForDay(ctx, principal.UserID, timeslot.Weekdays[int(weekday)])
	if err != nil {
		return DaySchedule{}, err
	}

	return scheduleFor(availability)
}

// SetMeetingDuration changes the slot length of the caller's existing
// availability window.
func (s *AvailabilityService) SetMeetingDuration(ctx context.Context, principal Principal, minutes int) (Availability, error) {
	logger := serviceLogger(ctx, s.logger, "availability", "set_duration", "user_id", principal.UserID)

	if minutes <= 0 {
		return Availability{}, validationError("Meeting duration must be a positive number of minutes")
	}

	availability, err := s.availabilities.GetAvailabilityByOwner(ctx, principal.UserID)
	if err != nil {
		return Availability{}, err
	}

	availability.Duration = minutes
	updated, err := s.availabilities.UpsertAvailability(ctx, availability)
	if err != nil {
		return Availability{}, err
	}

	logger.Info("meeting duration updated", "minutes", minutes)
	return updated, nil
}

// BookingLink returns the caller's shareable booking page URL.
func (s *AvailabilityService) BookingLink(principal Principal) string {
	return s.links.BookingLink(principal.UserID)
}

// scheduleFor expands an availability record into its slot schedule.
func scheduleFor(availability Availability) (DaySchedule, error) {
	start, err := timeslot.ParseClock(availability.StartTime)
	if err != nil {
		return DaySchedule{}, err
	}
	end, err := timeslot.ParseClock(availability.EndTime)
	if err != nil {
		return DaySchedule{}, err
	}

	step := availability.Duration
	if step <= 0 {
		step = timeslot.DefaultStepMinutes
	}

	return DaySchedule{
		StartTime: availability.StartTime,
		EndTime:   availability.EndTime,
		TimeSlots: timeslot.Slots(start, end, step),
	}, nil
}

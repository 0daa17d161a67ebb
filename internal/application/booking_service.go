package application

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/example/slot-scheduler/internal/timeslot"
)

// BookingService handles the public, unauthenticated booking surface:
// anonymous visitors reserve slots on an organizer's published schedule.
type BookingService struct {
	validator      *ConflictValidator
	availabilities AvailabilityStore
	meetings       MeetingStore
	links          LinkBuilder
	idGenerator    func() string
	logger         *slog.Logger
}

// NewBookingService builds a BookingService.
func NewBookingService(validator *ConflictValidator, availabilities AvailabilityStore, meetings MeetingStore, links LinkBuilder, logger *slog.Logger) *BookingService {
	return &BookingService{
		validator:      validator,
		availabilities: availabilities,
		meetings:       meetings,
		links:          links,
		idGenerator:    uuid.NewString,
		logger:         defaultLogger(logger),
	}
}

// BookMeeting validates and persists an anonymous booking. Bookings are
// confirmed immediately, so the meeting lands in the accepted state.
func (s *BookingService) BookMeeting(ctx context.Context, params BookMeetingParams) (BookMeetingResult, error) {
	logger := serviceLogger(ctx, s.logger, "booking", "book", "organizer_id", params.OrganizerID)

	params.Title = strings.TrimSpace(params.Title)
	params.RequesterName = strings.TrimSpace(params.RequesterName)
	params.RequesterEmail = normalizeEmail(params.RequesterEmail)
	params.OrganizerID = strings.TrimSpace(params.OrganizerID)

	if params.Title == "" || params.Date == "" || params.Time == "" ||
		params.RequesterName == "" || params.RequesterEmail == "" || params.OrganizerID == "" {
		return BookMeetingResult{}, validationError("Title, date, time, name, email, and userId are required")
	}
	if _, err := mail.ParseAddress(params.RequesterEmail); err != nil {
		return BookMeetingResult{}, validationError("Email is invalid")
	}

	if err := s.validator.ValidateBooking(ctx, params.Date, params.Time, params.OrganizerID); err != nil {
		logger.Debug("booking rejected", "error_kind", ErrorKind(err))
		return BookMeetingResult{}, err
	}

	_, normalizedDate, err := NormalizeDate(params.Date)
	if err != nil {
		return BookMeetingResult{}, err
	}
	requested, err := timeslot.ParseClock(params.Time)
	if err != nil {
		return BookMeetingResult{}, validationError("Invalid time format")
	}

	meeting, err := s.meetings.CreateMeeting(ctx, Meeting{
		ID:             s.idGenerator(),
		Title:          params.Title,
		Date:           normalizedDate,
		Time:           requested.String(),
		OrganizerID:    params.OrganizerID,
		RequesterName:  params.RequesterName,
		RequesterEmail: params.RequesterEmail,
		Notes:          strings.TrimSpace(params.Notes),
		Status:         StatusAccepted,
	})
	if err != nil {
		// A concurrent booking of the same slot loses on the unique slot
		// index after passing validation.
		if errors.Is(err, ErrAlreadyExists) {
			return BookMeetingResult{}, ErrSlotTaken
		}
		return BookMeetingResult{}, err
	}

	logger.Info("meeting booked", "meeting_id", meeting.ID, "date", meeting.Date, "time", meeting.Time)
	return BookMeetingResult{
		Meeting: meeting,
		Link:    s.links.MeetingLink(meeting.ID),
	}, nil
}

// PublicDaySlots enumerates the bookable slots for a calendar date on the
// public booking page. The weekday is derived from the date.
func (s *BookingService) PublicDaySlots(ctx context.Context, date string) (DaySchedule, error) {
	parsed, _, err := NormalizeDate(date)
	if err != nil {
		return DaySchedule{}, err
	}

	availability, err := s.availabilities.GetAvailabilityForDay(ctx, "", timeslot.WeekdayName(parsed))
	if err != nil {
		return DaySchedule{}, err
	}

	return scheduleFor(availability)
}

// MeetingDetails returns the booked meeting behind a confirmation link.
func (s *BookingService) MeetingDetails(ctx context.Context, id string) (Meeting, error) {
	return s.meetings.GetMeeting(ctx, id)
}

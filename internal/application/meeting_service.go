package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/slot-scheduler/internal/timeslot"
)

// displayLayout renders meeting dates for the authenticated dashboard after
// adjusting to the viewer's time zone.
const displayLayout = "Mon, 02 Jan 2006 15:04 MST"

// MeetingService manages meeting records for authenticated users: direct
// creation, proposals, edits, and the accept/decline lifecycle.
type MeetingService struct {
	meetings    MeetingStore
	idGenerator func() string
	logger      *slog.Logger
}

// NewMeetingService builds a MeetingService.
func NewMeetingService(meetings MeetingStore, logger *slog.Logger) *MeetingService {
	return &MeetingService{
		meetings:    meetings,
		idGenerator: uuid.NewString,
		logger:      defaultLogger(logger),
	}
}

// ListMeetings returns all meetings with display dates adjusted to the
// viewer's time zone. Records whose date or time cannot be parsed fall back
// to the stored date unchanged.
func (s *MeetingService) ListMeetings(ctx context.Context, principal Principal) ([]MeetingView, error) {
	meetings, err := s.meetings.ListMeetings(ctx)
	if err != nil {
		return nil, err
	}

	location := time.UTC
	if principal.TimeZone != "" {
		if loc, err := time.LoadLocation(principal.TimeZone); err == nil {
			location = loc
		}
	}

	views := make([]MeetingView, 0, len(meetings))
	for _, meeting := range meetings {
		views = append(views, MeetingView{
			Meeting:      meeting,
			AdjustedDate: adjustedDate(meeting, location),
		})
	}
	return views, nil
}

// CreateMeeting records a meeting directly for the caller. Meetings created
// this way start in the proposed state until accepted.
func (s *MeetingService) CreateMeeting(ctx context.Context, params CreateMeetingParams) (Meeting, error) {
	logger := serviceLogger(ctx, s.logger, "meeting", "create", "user_id", params.Principal.UserID)

	normalizedDate, requestedTime, err := validateMeetingFields(params.Title, params.Date, params.Time)
	if err != nil {
		return Meeting{}, err
	}

	meeting, err := s.meetings.CreateMeeting(ctx, Meeting{
		ID:          s.idGenerator(),
		Title:       strings.TrimSpace(params.Title),
		Description: strings.TrimSpace(params.Description),
		Date:        normalizedDate,
		Time:        requestedTime,
		OrganizerID: params.Principal.UserID,
		Status:      StatusProposed,
	})
	if err != nil {
		return Meeting{}, err
	}

	logger.Info("meeting created", "meeting_id", meeting.ID)
	return meeting, nil
}

// ProposeMeeting records a meeting proposal addressed to participants. The
// record stays proposed until a participant accepts or declines it.
func (s *MeetingService) ProposeMeeting(ctx context.Context, params ProposeMeetingParams) (Meeting, error) {
	logger := serviceLogger(ctx, s.logger, "meeting", "propose", "user_id", params.Principal.UserID)

	normalizedDate, requestedTime, err := validateMeetingFields(params.Title, params.Date, params.Time)
	if err != nil {
		return Meeting{}, err
	}

	participants := make([]string, 0, len(params.ParticipantIDs))
	for _, id := range params.ParticipantIDs {
		if id = strings.TrimSpace(id); id != "" {
			participants = append(participants, id)
		}
	}
	if len(participants) == 0 {
		return Meeting{}, validationError("At least one participant is required")
	}

	meeting, err := s.meetings.CreateMeeting(ctx, Meeting{
		ID:             s.idGenerator(),
		Title:          strings.TrimSpace(params.Title),
		Description:    strings.TrimSpace(params.Description),
		Date:           normalizedDate,
		Time:           requestedTime,
		OrganizerID:    params.Principal.UserID,
		ParticipantIDs: participants,
		Status:         StatusProposed,
	})
	if err != nil {
		return Meeting{}, err
	}

	logger.Info("meeting proposed", "meeting_id", meeting.ID, "participants", len(participants))
	return meeting, nil
}

// UpdateMeeting applies the provided fields to an existing meeting. Empty
// fields keep their stored values.
func (s *MeetingService) UpdateMeeting(ctx context.Context, params UpdateMeetingParams) (Meeting, error) {
	logger := serviceLogger(ctx, s.logger, "meeting", "update", "meeting_id", params.MeetingID)

	meeting, err := s.meetings.GetMeeting(ctx, params.MeetingID)
	if err != nil {
		return Meeting{}, err
	}

	if title := strings.TrimSpace(params.Title); title != "" {
		meeting.Title = title
	}
	if description := strings.TrimSpace(params.Description); description != "" {
		meeting.Description = description
	}
	if params.Date != "" {
		_, normalizedDate, err := NormalizeDate(params.Date)
		if err != nil {
			return Meeting{}, err
		}
		meeting.Date = normalizedDate
	}
	if params.Time != "" {
		requested, err := timeslot.ParseClock(params.Time)
		if err != nil {
			return Meeting{}, validationError("Invalid time format")
		}
		meeting.Time = requested.String()
	}

	updated, err := s.meetings.UpdateMeeting(ctx, meeting)
	if err != nil {
		return Meeting{}, err
	}

	logger.Info("meeting updated")
	return updated, nil
}

// DeleteMeeting removes a meeting record.
func (s *MeetingService) DeleteMeeting(ctx context.Context, principal Principal, id string) error {
	logger := serviceLogger(ctx, s.logger, "meeting", "delete", "meeting_id", id)

	if err := s.meetings.DeleteMeeting(ctx, id); err != nil {
		return err
	}

	logger.Info("meeting deleted")
	return nil
}

// AcceptMeeting marks a proposal accepted.
func (s *MeetingService) AcceptMeeting(ctx context.Context, principal Principal, id string) (Meeting, error) {
	return s.transition(ctx, id, StatusAccepted)
}

// DeclineMeeting marks a proposal declined.
func (s *MeetingService) DeclineMeeting(ctx context.Context, principal Principal, id string) (Meeting, error) {
	return s.transition(ctx, id, StatusDeclined)
}

func (s *MeetingService) transition(ctx context.Context, id string, status MeetingStatus) (Meeting, error) {
	logger := serviceLogger(ctx, s.logger, "meeting", "transition", "meeting_id", id)

	meeting, err := s.meetings.UpdateMeetingStatus(ctx, id, status)
	if err != nil {
		return Meeting{}, err
	}

	logger.Info("meeting status updated", "status", string(status))
	return meeting, nil
}

func validateMeetingFields(title, date, timeOfDay string) (normalizedDate, normalizedTime string, err error) {
	if strings.TrimSpace(title) == "" || date == "" || timeOfDay == "" {
		return "", "", validationError("Title, date, and time are required")
	}
	_, normalizedDate, err = NormalizeDate(date)
	if err != nil {
		return "", "", err
	}
	requested, err := timeslot.ParseClock(timeOfDay)
	if err != nil {
		return "", "", validationError("Invalid time format")
	}
	return normalizedDate, requested.String(), nil
}

// adjustedDate renders the meeting's wall-clock slot in the viewer's zone.
// The stored date and time carry no zone, so they are anchored in UTC first.
func adjustedDate(meeting Meeting, location *time.Location) string {
	combined, err := time.Parse("2006-01-02 15:04", meeting.Date+" "+meeting.Time)
	if err != nil {
		return meeting.Date
	}
	return combined.In(location).Format(displayLayout)
}

package application

import "time"

// Principal represents the authenticated user invoking a service method.
// It is threaded explicitly through every operation instead of hiding in
// ambient request state.
type Principal struct {
	UserID   string
	Name     string
	Email    string
	TimeZone string
}

// User represents a registered account exposed by the application services.
// Password material never leaves the credential store.
type User struct {
	ID        string
	Name      string
	Email     string
	TimeZone  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser captures the attributes persisted when an account is created.
type NewUser struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	TimeZone     string
}

// UserCredentials models the authentication attributes stored for a user.
type UserCredentials struct {
	User         User
	PasswordHash string
}

// RegisterParams captures the data required to register an account.
type RegisterParams struct {
	Name     string
	Email    string
	Password string
	TimeZone string
}

// LoginParams captures the data required to authenticate.
type LoginParams struct {
	Email    string
	Password string
}

// AuthResult pairs a fresh bearer token with the authenticated user.
type AuthResult struct {
	Token string
	User  User
}

// Availability is a user's recurring weekly availability window.
type Availability struct {
	ID        string
	UserID    string
	StartTime string
	EndTime   string
	Days      []string
	Duration  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AvailabilityInput captures caller provided availability fields.
type AvailabilityInput struct {
	StartTime string
	EndTime   string
	Days      []string
	Duration  int
}

// SetAvailabilityParams wraps the data required to upsert an availability window.
type SetAvailabilityParams struct {
	Principal Principal
	Input     AvailabilityInput
}

// DaySchedule is the bookable view of one weekday: the window bounds plus
// the enumerated slot start times.
type DaySchedule struct {
	StartTime string
	EndTime   string
	TimeSlots []string
}

// MeetingStatus is the lifecycle state of a meeting record.
type MeetingStatus string

const (
	// StatusProposed is the initial state of meetings created through the
	// proposal flow.
	StatusProposed MeetingStatus = "proposed"
	// StatusAccepted marks a confirmed meeting. Terminal.
	StatusAccepted MeetingStatus = "accepted"
	// StatusDeclined marks a rejected proposal. Terminal.
	StatusDeclined MeetingStatus = "declined"
)

// Meeting represents a booked or proposed meeting.
type Meeting struct {
	ID             string
	Title          string
	Description    string
	Date           string
	Time           string
	OrganizerID    string
	ParticipantIDs []string
	RequesterName  string
	RequesterEmail string
	Notes          string
	Status         MeetingStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// MeetingView decorates a meeting with the display date adjusted to the
// requesting user's time zone.
type MeetingView struct {
	Meeting
	AdjustedDate string
}

// BookMeetingParams captures an anonymous booking request against an
// organizer's availability.
type BookMeetingParams struct {
	Title          string
	Date           string
	Time           string
	RequesterName  string
	RequesterEmail string
	Notes          string
	OrganizerID    string
}

// BookMeetingResult pairs the persisted meeting with its shareable link.
type BookMeetingResult struct {
	Meeting Meeting
	Link    string
}

// CreateMeetingParams wraps the data required to create a meeting directly.
type CreateMeetingParams struct {
	Principal   Principal
	Title       string
	Description string
	Date        string
	Time        string
}

// UpdateMeetingParams wraps the data required to update an existing meeting.
type UpdateMeetingParams struct {
	Principal   Principal
	MeetingID   string
	Title       string
	Description string
	Date        string
	Time        string
}

// ProposeMeetingParams wraps the data required to propose a meeting to
// participants.
type ProposeMeetingParams struct {
	Principal      Principal
	Title          string
	Description    string
	Date           string
	Time           string
	ParticipantIDs []string
}

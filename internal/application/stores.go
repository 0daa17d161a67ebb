package application

import "context"

// UserStore abstracts account persistence for the auth service.
type UserStore interface {
	CreateUser(ctx context.Context, user NewUser) (User, error)
	GetUser(ctx context.Context, id string) (User, error)
	GetUserCredentialsByEmail(ctx context.Context, email string) (UserCredentials, error)
}

// AvailabilityStore abstracts availability persistence. GetAvailabilityForDay
// matches records whose weekday list contains day; an empty userID matches
// any owner, which backs the public booking page.
type AvailabilityStore interface {
	UpsertAvailability(ctx context.Context, availability Availability) (Availability, error)
	GetAvailabilityByOwner(ctx context.Context, userID string) (Availability, error)
	GetAvailabilityForDay(ctx context.Context, userID, day string) (Availability, error)
}

// MeetingStore abstracts meeting persistence.
type MeetingStore interface {
	CreateMeeting(ctx context.Context, meeting Meeting) (Meeting, error)
	GetMeeting(ctx context.Context, id string) (Meeting, error)
	GetMeetingBySlot(ctx context.Context, organizerID, date, timeOfDay string) (Meeting, error)
	ListMeetings(ctx context.Context) ([]Meeting, error)
	UpdateMeeting(ctx context.Context, meeting Meeting) (Meeting, error)
	UpdateMeetingStatus(ctx context.Context, id string, status MeetingStatus) (Meeting, error)
	DeleteMeeting(ctx context.Context, id string) error
}

// LinkBuilder renders the shareable frontend URLs handed back to callers.
type LinkBuilder interface {
	BookingLink(userID string) string
	MeetingLink(meetingID string) string
}

package persistence

import "context"

// UserRepository exposes the persistence operations for user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user User) error
	GetUser(ctx context.Context, id string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
}

// AvailabilityRepository stores at most one availability record per owner.
// Upsert replaces the existing record when one is present.
type AvailabilityRepository interface {
	UpsertAvailability(ctx context.Context, availability Availability) (Availability, error)
	GetAvailabilityByOwner(ctx context.Context, userID string) (Availability, error)
	// GetAvailabilityForDay returns the owner's availability when its active
	// weekday set contains day. An empty userID matches any owner; the public
	// date-keyed slot listing relies on that form.
	GetAvailabilityForDay(ctx context.Context, userID, day string) (Availability, error)
}

// MeetingRepository stores meeting records and their participant lists.
type MeetingRepository interface {
	CreateMeeting(ctx context.Context, meeting Meeting) error
	GetMeeting(ctx context.Context, id string) (Meeting, error)
	// GetMeetingBySlot resolves a meeting by its (organizer, date, time)
	// compound key, the domain level double-booking check.
	GetMeetingBySlot(ctx context.Context, organizerID, date, timeOfDay string) (Meeting, error)
	ListMeetings(ctx context.Context) ([]Meeting, error)
	UpdateMeeting(ctx context.Context, meeting Meeting) error
	UpdateMeetingStatus(ctx context.Context, id, status string) (Meeting, error)
	DeleteMeeting(ctx context.Context, id string) error
}

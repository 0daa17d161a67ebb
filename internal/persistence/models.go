package persistence

import "time"

// User represents a registered account in the scheduling domain.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	TimeZone     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Availability represents the single recurring weekly availability window
// persisted per owner.
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

// Meeting represents a booked or proposed meeting record.
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
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

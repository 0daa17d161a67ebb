// Package testfixtures provides deterministic clocks, identifier generators,
// and record builders shared by tests across the module.
package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/slot-scheduler/internal/application"
)

var (
	userCounter    uint64
	meetingCounter uint64
)

var referenceTime = time.Date(2025, time.June, 2, 9, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
// It falls on a Monday so weekday-sensitive tests stay readable.
func ReferenceTime() time.Time {
	return referenceTime
}

// UserOption configures a generated user fixture.
type UserOption func(*application.User)

// NewUserFixture returns a deterministic user with optional overrides.
func NewUserFixture(opts ...UserOption) application.User {
	idx := atomic.AddUint64(&userCounter, 1)
	id := fmt.Sprintf("user-%03d", idx)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	user := application.User{
		ID:        id,
		Name:      fmt.Sprintf("User %03d", idx),
		Email:     fmt.Sprintf("%s@example.com", id),
		TimeZone:  "UTC",
		CreatedAt: created,
		UpdatedAt: created,
	}
	for _, opt := range opts {
		opt(&user)
	}
	return user
}

// WithUserID overrides the generated user id.
func WithUserID(id string) UserOption {
	return func(u *application.User) { u.ID = id }
}

// WithTimeZone overrides the generated user time zone.
func WithTimeZone(zone string) UserOption {
	return func(u *application.User) { u.TimeZone = zone }
}

// AvailabilityOption configures a generated availability fixture.
type AvailabilityOption func(*application.Availability)

// NewAvailabilityFixture returns a weekday business-hours window.
func NewAvailabilityFixture(userID string, opts ...AvailabilityOption) application.Availability {
	availability := application.Availability{
		ID:        "avail-" + userID,
		UserID:    userID,
		StartTime: "09:00",
		EndTime:   "17:00",
		Days:      []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
		Duration:  30,
		CreatedAt: referenceTime,
		UpdatedAt: referenceTime,
	}
	for _, opt := range opts {
		opt(&availability)
	}
	return availability
}

// WithWindow overrides the window bounds.
func WithWindow(start, end string) AvailabilityOption {
	return func(a *application.Availability) {
		a.StartTime = start
		a.EndTime = end
	}
}

// WithDays overrides the covered weekdays.
func WithDays(days ...string) AvailabilityOption {
	return func(a *application.Availability) { a.Days = days }
}

// WithDuration overrides the slot length in minutes.
func WithDuration(minutes int) AvailabilityOption {
	return func(a *application.Availability) { a.Duration = minutes }
}

// MeetingOption configures a generated meeting fixture.
type MeetingOption func(*application.Meeting)

// NewMeetingFixture returns a deterministic accepted meeting on the reference
// Monday with optional overrides.
func NewMeetingFixture(organizerID string, opts ...MeetingOption) application.Meeting {
	idx := atomic.AddUint64(&meetingCounter, 1)
	meeting := application.Meeting{
		ID:             fmt.Sprintf("meeting-%03d", idx),
		Title:          fmt.Sprintf("Meeting %03d", idx),
		Date:           referenceTime.Format("2006-01-02"),
		Time:           "10:00",
		OrganizerID:    organizerID,
		RequesterName:  "Visitor",
		RequesterEmail: "visitor@example.com",
		Status:         application.StatusAccepted,
		CreatedAt:      referenceTime,
		UpdatedAt:      referenceTime,
	}
	for _, opt := range opts {
		opt(&meeting)
	}
	return meeting
}

// WithSlot overrides the meeting date and time.
func WithSlot(date, timeOfDay string) MeetingOption {
	return func(m *application.Meeting) {
		m.Date = date
		m.Time = timeOfDay
	}
}

// WithStatus overrides the meeting status.
func WithStatus(status application.MeetingStatus) MeetingOption {
	return func(m *application.Meeting) { m.Status = status }
}

// WithParticipants overrides the participant list.
func WithParticipants(ids ...string) MeetingOption {
	return func(m *application.Meeting) { m.ParticipantIDs = ids }
}

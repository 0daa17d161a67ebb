package application

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"
)

// In-memory store stubs backing the service tests.

type storedUser struct {
	user         User
	passwordHash string
}

type stubUserStore struct {
	mu    sync.Mutex
	users []storedUser
}

func (s *stubUserStore) CreateUser(_ context.Context, user NewUser) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.user.Email == user.Email {
			return User{}, ErrAlreadyExists
		}
	}
	created := User{ID: user.ID, Name: user.Name, Email: user.Email, TimeZone: user.TimeZone}
	s.users = append(s.users, storedUser{user: created, passwordHash: user.PasswordHash})
	return created, nil
}

func (s *stubUserStore) GetUser(_ context.Context, id string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.user.ID == id {
			return existing.user, nil
		}
	}
	return User{}, ErrNotFound
}

func (s *stubUserStore) GetUserCredentialsByEmail(_ context.Context, email string) (UserCredentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.user.Email == email {
			return UserCredentials{User: existing.user, PasswordHash: existing.passwordHash}, nil
		}
	}
	return UserCredentials{}, ErrNotFound
}

type stubAvailabilityStore struct {
	mu      sync.Mutex
	records []Availability
	err     error
}

func (s *stubAvailabilityStore) UpsertAvailability(_ context.Context, availability Availability) (Availability, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return Availability{}, s.err
	}
	for i, existing := range s.records {
		if existing.UserID == availability.UserID {
			availability.ID = existing.ID
			s.records[i] = availability
			return availability, nil
		}
	}
	s.records = append(s.records, availability)
	return availability, nil
}

func (s *stubAvailabilityStore) GetAvailabilityByOwner(_ context.Context, userID string) (Availability, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return Availability{}, s.err
	}
	for _, existing := range s.records {
		if existing.UserID == userID {
			return existing, nil
		}
	}
	return Availability{}, ErrNotFound
}

func (s *stubAvailabilityStore) GetAvailabilityForDay(_ context.Context, userID, day string) (Availability, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return Availability{}, s.err
	}
	for _, existing := range s.records {
		if userID != "" && existing.UserID != userID {
			continue
		}
		if slices.Contains(existing.Days, day) {
			return existing, nil
		}
	}
	return Availability{}, ErrNotFound
}

type stubMeetingStore struct {
	mu        sync.Mutex
	meetings  []Meeting
	createErr error
}

func (s *stubMeetingStore) CreateMeeting(_ context.Context, meeting Meeting) (Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return Meeting{}, s.createErr
	}
	for _, existing := range s.meetings {
		if existing.OrganizerID == meeting.OrganizerID && existing.Date == meeting.Date && existing.Time == meeting.Time {
			return Meeting{}, ErrAlreadyExists
		}
	}
	s.meetings = append(s.meetings, meeting)
	return meeting, nil
}

func (s *stubMeetingStore) GetMeeting(_ context.Context, id string) (Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.meetings {
		if existing.ID == id {
			return existing, nil
		}
	}
	return Meeting{}, ErrNotFound
}

func (s *stubMeetingStore) GetMeetingBySlot(_ context.Context, organizerID, date, timeOfDay string) (Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.meetings {
		if existing.OrganizerID == organizerID && existing.Date == date && existing.Time == timeOfDay {
			return existing, nil
		}
	}
	return Meeting{}, ErrNotFound
}

func (s *stubMeetingStore) ListMeetings(_ context.Context) ([]Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.meetings), nil
}

func (s *stubMeetingStore) UpdateMeeting(_ context.Context, meeting Meeting) (Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.meetings {
		if existing.ID == meeting.ID {
			s.meetings[i] = meeting
			return meeting, nil
		}
	}
	return Meeting{}, ErrNotFound
}

func (s *stubMeetingStore) UpdateMeetingStatus(_ context.Context, id string, status MeetingStatus) (Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.meetings {
		if existing.ID == id {
			s.meetings[i].Status = status
			return s.meetings[i], nil
		}
	}
	return Meeting{}, ErrNotFound
}

func (s *stubMeetingStore) DeleteMeeting(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.meetings {
		if existing.ID == id {
			s.meetings = slices.Delete(s.meetings, i, i+1)
			return nil
		}
	}
	return ErrNotFound
}

type stubLinks struct {
	base string
}

func (s stubLinks) BookingLink(userID string) string {
	return fmt.Sprintf("%s/book/%s", s.base, userID)
}

func (s stubLinks) MeetingLink(meetingID string) string {
	return fmt.Sprintf("%s/meeting/%s", s.base, meetingID)
}

func sequentialIDs(prefix string) func() string {
	var mu sync.Mutex
	next := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		next++
		return fmt.Sprintf("%s-%d", prefix, next)
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/example/slot-scheduler/internal/application"
	"github.com/example/slot-scheduler/internal/config"
	httptransport "github.com/example/slot-scheduler/internal/http"
	"github.com/example/slot-scheduler/internal/logging"
	"github.com/example/slot-scheduler/internal/persistence"
	"github.com/example/slot-scheduler/internal/persistence/sqlite"
)

func main() {
	logger := logging.New(os.Stdout, "")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger = logging.New(os.Stdout, cfg.Environment)

	storage, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := storage.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if err := storage.Migrate(context.Background()); err != nil {
		logger.Error("failed to apply schema", "error", err)
		os.Exit(1)
	}

	users := newUserStoreAdapter(sqlite.NewUserRepository(storage))
	availabilities := newAvailabilityStoreAdapter(sqlite.NewAvailabilityRepository(storage))
	meetings := newMeetingStoreAdapter(sqlite.NewMeetingRepository(storage))
	links := frontendLinks{baseURL: cfg.FrontendURL}

	tokens := application.NewTokenIssuer([]byte(cfg.JWTSecret), cfg.TokenTTL, nil)
	authService := application.NewAuthService(users, tokens, logger)
	availabilityService := application.NewAvailabilityService(availabilities, links, logger)
	validator := application.NewConflictValidator(availabilities, meetings)
	bookingService := application.NewBookingService(validator, availabilities, meetings, links, logger)
	meetingService := application.NewMeetingService(meetings, logger)

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins: []string{cfg.FrontendURL},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	handler := httptransport.NewRouter(httptransport.RouterConfig{
		Auth:         httptransport.NewAuthHandler(authService, logger),
		Availability: httptransport.NewAvailabilityHandler(availabilityService, logger),
		Bookings:     httptransport.NewBookingHandler(bookingService, logger),
		Meetings:     httptransport.NewMeetingHandler(meetingService, logger),
		RequireAuth:  httptransport.RequireAuth(authService, logger),
		Middleware: []func(http.Handler) http.Handler{
			httptransport.RequestLogger(logger),
			corsMiddleware.Handler,
		},
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("scheduler API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}

// frontendLinks renders the shareable URLs served by the frontend.
type frontendLinks struct {
	baseURL string
}

func (l frontendLinks) BookingLink(userID string) string {
	return fmt.Sprintf("%s/book/%s", l.baseURL, userID)
}

func (l frontendLinks) MeetingLink(meetingID string) string {
	return fmt.Sprintf("%s/meeting/%s", l.baseURL, meetingID)
}

// mapStoreError translates persistence sentinels into their application
// counterparts at the adapter boundary.
func mapStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, persistence.ErrNotFound):
		return application.ErrNotFound
	case errors.Is(err, persistence.ErrDuplicate):
		return application.ErrAlreadyExists
	default:
		return err
	}
}

type userStoreAdapter struct {
	repo persistence.UserRepository
}

func newUserStoreAdapter(repo persistence.UserRepository) *userStoreAdapter {
	return &userStoreAdapter{repo: repo}
}

func (a *userStoreAdapter) CreateUser(ctx context.Context, user application.NewUser) (application.User, error) {
	if err := a.repo.CreateUser(ctx, persistence.User{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		TimeZone:     user.TimeZone,
	}); err != nil {
		return application.User{}, mapStoreError(err)
	}
	stored, err := a.repo.GetUser(ctx, user.ID)
	if err != nil {
		return application.User{}, mapStoreError(err)
	}
	return toApplicationUser(stored), nil
}

func (a *userStoreAdapter) GetUser(ctx context.Context, id string) (application.User, error) {
	stored, err := a.repo.GetUser(ctx, id)
	if err != nil {
		return application.User{}, mapStoreError(err)
	}
	return toApplicationUser(stored), nil
}

func (a *userStoreAdapter) GetUserCredentialsByEmail(ctx context.Context, email string) (application.UserCredentials, error) {
	stored, err := a.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return application.UserCredentials{}, mapStoreError(err)
	}
	return application.UserCredentials{
		User:         toApplicationUser(stored),
		PasswordHash: stored.PasswordHash,
	}, nil
}

func toApplicationUser(user persistence.User) application.User {
	return application.User{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		TimeZone:  user.TimeZone,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

type availabilityStoreAdapter struct {
	repo persistence.AvailabilityRepository
}

func newAvailabilityStoreAdapter(repo persistence.AvailabilityRepository) *availabilityStoreAdapter {
	return &availabilityStoreAdapter{repo: repo}
}

func (a *availabilityStoreAdapter) UpsertAvailability(ctx context.Context, availability application.Availability) (application.Availability, error) {
	stored, err := a.repo.UpsertAvailability(ctx, persistence.Availability{
		ID:        availability.ID,
		UserID:    availability.UserID,
		StartTime: availability.StartTime,
		EndTime:   availability.EndTime,
		Days:      availability.Days,
		Duration:  availability.Duration,
	})
	if err != nil {
		return application.Availability{}, mapStoreError(err)
	}
	return toApplicationAvailability(stored), nil
}

func (a *availabilityStoreAdapter) GetAvailabilityByOwner(ctx context.Context, userID string) (application.Availability, error) {
	stored, err := a.repo.GetAvailabilityByOwner(ctx, userID)
	if err != nil {
		return application.Availability{}, mapStoreError(err)
	}
	return toApplicationAvailability(stored), nil
}

func (a *availabilityStoreAdapter) GetAvailabilityForDay(ctx context.Context, userID, day string) (application.Availability, error) {
	stored, err := a.repo.GetAvailabilityForDay(ctx, userID, day)
	if err != nil {
		return application.Availability{}, mapStoreError(err)
	}
	return toApplicationAvailability(stored), nil
}

func toApplicationAvailability(availability persistence.Availability) application.Availability {
	return application.Availability{
		ID:        availability.ID,
		UserID:    availability.UserID,
		StartTime: availability.StartTime,
		EndTime:   availability.EndTime,
		Days:      availability.Days,
		Duration:  availability.Duration,
		CreatedAt: availability.CreatedAt,
		UpdatedAt: availability.UpdatedAt,
	}
}

type meetingStoreAdapter struct {
	repo persistence.MeetingRepository
}

func newMeetingStoreAdapter(repo persistence.MeetingRepository) *meetingStoreAdapter {
	return &meetingStoreAdapter{repo: repo}
}

// mapSlotError translates a unique-index violation on the meeting slot into
// the slot-taken sentinel. The generic duplicate sentinel belongs to user
// registration and would render the wrong message here.
func mapSlotError(err error) error {
	if errors.Is(err, persistence.ErrDuplicate) {
		return application.ErrSlotTaken
	}
	return mapStoreError(err)
}

func (a *meetingStoreAdapter) CreateMeeting(ctx context.Context, meeting application.Meeting) (application.Meeting, error) {
	if err := a.repo.CreateMeeting(ctx, toPersistenceMeeting(meeting)); err != nil {
		return application.Meeting{}, mapSlotError(err)
	}
	stored, err := a.repo.GetMeeting(ctx, meeting.ID)
	if err != nil {
		return application.Meeting{}, mapStoreError(err)
	}
	return toApplicationMeeting(stored), nil
}

func (a *meetingStoreAdapter) GetMeeting(ctx context.Context, id string) (application.Meeting, error) {
	stored, err := a.repo.GetMeeting(ctx, id)
	if err != nil {
		return application.Meeting{}, mapStoreError(err)
	}
	return toApplicationMeeting(stored), nil
}

func (a *meetingStoreAdapter) GetMeetingBySlot(ctx context.Context, organizerID, date, timeOfDay string) (application.Meeting, error) {
	stored, err := a.repo.GetMeetingBySlot(ctx, organizerID, date, timeOfDay)
	if err != nil {
		return application.Meeting{}, mapStoreError(err)
	}
	return toApplicationMeeting(stored), nil
}

func (a *meetingStoreAdapter) ListMeetings(ctx context.Context) ([]application.Meeting, error) {
	models, err := a.repo.ListMeetings(ctx)
	if err != nil {
		return nil, mapStoreError(err)
	}
	if len(models) == 0 {
		return nil, nil
	}
	meetings := make([]application.Meeting, 0, len(models))
	for _, model := range models {
		meetings = append(meetings, toApplicationMeeting(model))
	}
	return meetings, nil
}

func (a *meetingStoreAdapter) UpdateMeeting(ctx context.Context, meeting application.Meeting) (application.Meeting, error) {
	if err := a.repo.UpdateMeeting(ctx, toPersistenceMeeting(meeting)); err != nil {
		return application.Meeting{}, mapSlotError(err)
	}
	stored, err := a.repo.GetMeeting(ctx, meeting.ID)
	if err != nil {
		return application.Meeting{}, mapStoreError(err)
	}
	return toApplicationMeeting(stored), nil
}

func (a *meetingStoreAdapter) UpdateMeetingStatus(ctx context.Context, id string, status application.MeetingStatus) (application.Meeting, error) {
	stored, err := a.repo.UpdateMeetingStatus(ctx, id, string(status))
	if err != nil {
		return application.Meeting{}, mapStoreError(err)
	}
	return toApplicationMeeting(stored), nil
}

func (a *meetingStoreAdapter) DeleteMeeting(ctx context.Context, id string) error {
	return mapStoreError(a.repo.DeleteMeeting(ctx, id))
}

func toPersistenceMeeting(meeting application.Meeting) persistence.Meeting {
	return persistence.Meeting{
		ID:             meeting.ID,
		Title:          meeting.Title,
		Description:    meeting.Description,
		Date:           meeting.Date,
		Time:           meeting.Time,
		OrganizerID:    meeting.OrganizerID,
		ParticipantIDs: meeting.ParticipantIDs,
		RequesterName:  meeting.RequesterName,
		RequesterEmail: meeting.RequesterEmail,
		Notes:          meeting.Notes,
		Status:         string(meeting.Status),
	}
}

func toApplicationMeeting(meeting persistence.Meeting) application.Meeting {
	return application.Meeting{
		ID:             meeting.ID,
		Title:          meeting.Title,
		Description:    meeting.Description,
		Date:           meeting.Date,
		Time:           meeting.Time,
		OrganizerID:    meeting.OrganizerID,
		ParticipantIDs: meeting.ParticipantIDs,
		RequesterName:  meeting.RequesterName,
		RequesterEmail: meeting.RequesterEmail,
		Notes:          meeting.Notes,
		Status:         application.MeetingStatus(meeting.Status),
		CreatedAt:      meeting.CreatedAt,
		UpdatedAt:      meeting.UpdatedAt,
	}
}

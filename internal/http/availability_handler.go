package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/example/slot-scheduler/internal/application"
)

type availabilityService interface {
	SetAvailability(ctx context.Context, params application.SetAvailabilityParams) (application.Availability, error)
	GetAvailability(ctx context.Context, principal application.Principal) (application.Availability, error)
	DaySlots(ctx context.Context, principal application.Principal, day string) (application.DaySchedule, error)
	SetMeetingDuration(ctx context.Context, principal application.Principal, minutes int) (application.Availability, error)
	BookingLink(principal application.Principal) string
}

type AvailabilityHandler struct {
	service   availabilityService
	responder responder
	logger    *slog.Logger
}

func NewAvailabilityHandler(service availabilityService, logger *slog.Logger) *AvailabilityHandler {
	base := defaultLogger(logger)
	return &AvailabilityHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *AvailabilityHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "AvailabilityHandler", operation, attrs...)
}

func (h *AvailabilityHandler) Set(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	var req availabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Set", "principal_id", principal.UserID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode availability request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Set", "principal_id", principal.UserID)

	availability, err := h.service.SetAvailability(r.Context(), application.SetAvailabilityParams{
		Principal: principal,
		Input: application.AvailabilityInput{
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			Days:      req.Days,
			Duration:  req.Duration,
		},
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "availability update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "availability saved")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toAvailabilityDTO(availability))
}

func (h *AvailabilityHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	logger := h.log(r.Context(), "Get", "principal_id", principal.UserID)

	availability, err := h.service.GetAvailability(r.Context(), principal)
	if err != nil {
		logger.ErrorContext(r.Context(), "availability fetch failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toAvailabilityDTO(availability))
}

// DaySlots enumerates the caller's bookable slots for one weekday.
func (h *AvailabilityHandler) DaySlots(w http.ResponseWriter, r *http.Request, day string) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	logger := h.log(r.Context(), "DaySlots", "principal_id", principal.UserID, "day", day)

	schedule, err := h.service.DaySlots(r.Context(), principal, day)
	if err != nil {
		logger.ErrorContext(r.Context(), "day slot listing failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("slot_count", len(schedule.TimeSlots)).InfoContext(r.Context(), "day slots listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toScheduleDTO(schedule))
}

func (h *AvailabilityHandler) SetDuration(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	var req durationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "SetDuration", "principal_id", principal.UserID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode duration request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "SetDuration", "principal_id", principal.UserID)

	availability, err := h.service.SetMeetingDuration(r.Context(), principal, req.Duration)
	if err != nil {
		logger.ErrorContext(r.Context(), "duration update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "meeting duration updated", "minutes", req.Duration)
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toAvailabilityDTO(availability))
}

func (h *AvailabilityHandler) BookingLink(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	h.responder.writeJSON(r.Context(), w, http.StatusOK, bookingLinkResponse{BookingLink: h.service.BookingLink(principal)})
}

type availabilityRequest struct {
	StartTime string   `json:"startTime"`
	EndTime   string   `json:"endTime"`
	Days      []string `json:"days"`
	Duration  int      `json:"duration"`
}

type durationRequest struct {
	Duration int `json:"duration"`
}

type availabilityDTO struct {
	ID        string   `json:"id"`
	UserID    string   `json:"userId"`
	StartTime string   `json:"startTime"`
	EndTime   string   `json:"endTime"`
	Days      []string `json:"days"`
	Duration  int      `json:"duration"`
	CreatedAt string   `json:"createdAt,omitempty"`
	UpdatedAt string   `json:"updatedAt,omitempty"`
}

type scheduleDTO struct {
	StartTime string   `json:"startTime"`
	EndTime   string   `json:"endTime"`
	TimeSlots []string `json:"timeSlots"`
}

type bookingLinkResponse struct {
	BookingLink string `json:"bookingLink"`
}

func toAvailabilityDTO(availability application.Availability) availabilityDTO {
	dto := availabilityDTO{
		ID:        availability.ID,
		UserID:    availability.UserID,
		StartTime: availability.StartTime,
		EndTime:   availability.EndTime,
		Days:      availability.Days,
		Duration:  availability.Duration,
	}
	if !availability.CreatedAt.IsZero() {
		dto.CreatedAt = availability.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	if !availability.UpdatedAt.IsZero() {
		dto.UpdatedAt = availability.UpdatedAt.UTC().Format(time.RFC3339Nano)
	}
	return dto
}

func toScheduleDTO(schedule application.DaySchedule) scheduleDTO {
	return scheduleDTO{
		StartTime: schedule.StartTime,
		EndTime:   schedule.EndTime,
		TimeSlots: schedule.TimeSlots,
	}
}

package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/slot-scheduler/internal/application"
)

type bookingService interface {
	BookMeeting(ctx context.Context, params application.BookMeetingParams) (application.BookMeetingResult, error)
	PublicDaySlots(ctx context.Context, date string) (application.DaySchedule, error)
	MeetingDetails(ctx context.Context, id string) (application.Meeting, error)
}

// BookingHandler serves the public, unauthenticated booking surface.
type BookingHandler struct {
	service   bookingService
	responder responder
	logger    *slog.Logger
}

func NewBookingHandler(service bookingService, logger *slog.Logger) *BookingHandler {
	base := defaultLogger(logger)
	return &BookingHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *BookingHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "BookingHandler", operation, attrs...)
}

func (h *BookingHandler) Book(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Book", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode booking request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Book", "organizer_id", req.UserID)

	result, err := h.service.BookMeeting(r.Context(), application.BookMeetingParams{
		Title:          req.Title,
		Date:           req.Date,
		Time:           req.Time,
		RequesterName:  req.Name,
		RequesterEmail: req.Email,
		Notes:          req.Notes,
		OrganizerID:    req.UserID,
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "booking failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("meeting_id", result.Meeting.ID).InfoContext(r.Context(), "meeting booked")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, bookingResponse{
		Meeting: toMeetingDTO(result.Meeting),
		Link:    result.Link,
	})
}

// DateSlots enumerates the bookable slots for a calendar date.
func (h *BookingHandler) DateSlots(w http.ResponseWriter, r *http.Request, date string) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if strings.TrimSpace(date) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errMissingDateParam)
		return
	}

	logger := h.log(r.Context(), "DateSlots", "date", date)

	schedule, err := h.service.PublicDaySlots(r.Context(), date)
	if err != nil {
		logger.ErrorContext(r.Context(), "public slot listing failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("slot_count", len(schedule.TimeSlots)).InfoContext(r.Context(), "public slots listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toScheduleDTO(schedule))
}

// MeetingDetails serves the confirmation page behind a booking link.
func (h *BookingHandler) MeetingDetails(w http.ResponseWriter, r *http.Request, id string) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidMeetingID)
		return
	}

	logger := h.log(r.Context(), "MeetingDetails", "meeting_id", id)

	meeting, err := h.service.MeetingDetails(r.Context(), id)
	if err != nil {
		logger.ErrorContext(r.Context(), "meeting lookup failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, meetingResponse{Meeting: toMeetingDTO(meeting)})
}

type bookingRequest struct {
	Title  string `json:"title"`
	Date   string `json:"date"`
	Time   string `json:"time"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Notes  string `json:"notes"`
	UserID string `json:"userId"`
}

type bookingResponse struct {
	Meeting meetingDTO `json:"meeting"`
	Link    string     `json:"link"`
}

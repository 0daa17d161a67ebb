package application

import "errors"

var (
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("application: not found")
	// ErrUnauthorized is returned when the caller lacks a valid identity.
	ErrUnauthorized = errors.New("application: unauthorized")
	// ErrAlreadyExists is returned when a create collides with an existing
	// record, such as a reused email address.
	ErrAlreadyExists = errors.New("application: already exists")
	// ErrInvalidCredentials is returned when login credentials do not match.
	ErrInvalidCredentials = errors.New("application: invalid credentials")

	// ErrSlotTaken is returned when the requested (date, time, organizer)
	// slot already holds a meeting.
	ErrSlotTaken = errors.New("application: time slot already booked")
	// ErrNoAvailability is returned when the organizer has no availability
	// window covering the requested weekday.
	ErrNoAvailability = errors.New("application: no availability for day")
	// ErrOutsideAvailability is returned when the requested time falls
	// outside the matched availability window.
	ErrOutsideAvailability = errors.New("application: time outside availability")
)

// ValidationError captures malformed or missing input that callers surface
// to users verbatim.
type ValidationError struct {
	Message     string
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	if v == nil || v.Message == "" {
		return "validation failed"
	}
	return v.Message
}

// HasErrors reports whether any issue was recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && (v.Message != "" || len(v.FieldErrors) > 0)
}

// add records a field level validation error, keeping the first message as
// the headline when none was set.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
	if v.Message == "" {
		v.Message = message
	}
}

func validationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

package booking

import (
	"errors"
	"fmt"

	"studiobook/internal/domain"
)

var (
	ErrNotFound          = errors.New("not_found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidInterval   = errors.New("invalid_interval")
	ErrConflict          = errors.New("booking_conflict")
	ErrInvalidTransition = errors.New("invalid_status_transition")
	ErrValidation        = errors.New("validation error")
)

// Error is returned by every Service operation that fails for a domain reason.
// It unwraps to one of the sentinel kinds above.
type Error struct {
	Kind    error
	Message string

	Field             string
	Status            domain.BookingStatus
	Conflict          *Interval
	ConflictBookingID int64
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Kind }

func notFound(entity string, id int64) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf("%s with ID %d not found", entity, id)}
}

func forbidden(msg string) error {
	return &Error{Kind: ErrForbidden, Message: msg}
}

func invalidInterval(field, msg string) error {
	return &Error{Kind: ErrInvalidInterval, Field: field, Message: msg}
}

func validation(field, msg string) error {
	return &Error{Kind: ErrValidation, Field: field, Message: msg}
}

func invalidTransition(current domain.BookingStatus, action string) error {
	return &Error{
		Kind:    ErrInvalidTransition,
		Status:  current,
		Message: fmt.Sprintf("cannot %s a booking with status %s", action, current),
	}
}

func conflictWith(existing *domain.Booking) error {
	iv := Interval{Start: existing.StartTime, End: existing.EndTime}
	return &Error{
		Kind:              ErrConflict,
		Conflict:          &iv,
		ConflictBookingID: existing.ID,
		Message:           fmt.Sprintf("time slot overlaps an existing booking %s on %s", iv, existing.BookingDate),
	}
}

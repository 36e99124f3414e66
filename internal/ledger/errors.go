package ledger

import (
	"errors"
	"fmt"

	"hotelier/internal/models"
)

var (
	// ErrBookingNotFound is returned when a booking identifier is unknown.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrRoomNotFound is returned when the referenced room does not exist.
	ErrRoomNotFound = errors.New("room not found")

	// ErrGuestNotFound is returned when the referenced guest does not exist.
	ErrGuestNotFound = errors.New("guest not found")

	// ErrInvalidDateRange is returned when check-out is not strictly
	// after check-in.
	ErrInvalidDateRange = errors.New("check-out date must be after check-in date")

	// ErrRoomUnavailable is returned when the requested range overlaps
	// an active booking on the same room.
	ErrRoomUnavailable = errors.New("room is not available for the selected dates")

	// ErrInvalidTransition is returned on an illegal state-machine edge.
	ErrInvalidTransition = errors.New("invalid booking state transition")
)

// ConflictError carries the identifier of the booking that already
// claims the requested date range.
type ConflictError struct {
	RoomID    string
	BookingID string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("room %s is already booked by %s for overlapping dates", e.RoomID, e.BookingID)
}

func (e *ConflictError) Unwrap() error { return ErrRoomUnavailable }

// TransitionError reports the state a booking was in when an illegal
// transition was attempted.
type TransitionError struct {
	BookingID string
	From      models.BookingStatus
	Event     string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("booking %s: cannot %s from status %s", e.BookingID, e.Event, e.From)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

package domain

import "errors"

// Domain errors
var (
	// Validation errors
	ErrInvalidEventID  = errors.New("invalid event id")
	ErrInvalidUserID   = errors.New("invalid user id")
	ErrMissingTitle    = errors.New("event title is required")
	ErrMissingLocation = errors.New("event location is required")
	ErrMissingStartsAt = errors.New("event start time is required")
	ErrStartsInPast    = errors.New("event start time cannot be in the past")
	ErrInvalidCapacity = errors.New("capacity must be greater than zero")
	ErrInvalidSortBy   = errors.New("invalid sort_by value")

	// Not found errors
	ErrEventNotFound   = errors.New("event not found")
	ErrBookingNotFound = errors.New("booking not found")

	// Conflict errors
	ErrAlreadyBooked = errors.New("user already booked this event")
	ErrEventFull     = errors.New("event is full")
	ErrEventInPast   = errors.New("cannot join an event that already started")
)

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidEventID) ||
		errors.Is(err, ErrInvalidUserID) ||
		errors.Is(err, ErrMissingTitle) ||
		errors.Is(err, ErrMissingLocation) ||
		errors.Is(err, ErrMissingStartsAt) ||
		errors.Is(err, ErrStartsInPast) ||
		errors.Is(err, ErrInvalidCapacity) ||
		errors.Is(err, ErrInvalidSortBy)
}

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrEventNotFound) ||
		errors.Is(err, ErrBookingNotFound)
}

// IsConflictError checks if the error is a business-rule conflict
func IsConflictError(err error) bool {
	return errors.Is(err, ErrAlreadyBooked) ||
		errors.Is(err, ErrEventFull) ||
		errors.Is(err, ErrEventInPast)
}

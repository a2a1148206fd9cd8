package repository

import (
	"context"

	"github.com/Abhiram86/event-management-api/internal/domain"
)

// EventRepository handles persistence for events
type EventRepository interface {
	// Create inserts a new event
	Create(ctx context.Context, event *domain.Event) error

	// GetByID returns an event or domain.ErrEventNotFound
	GetByID(ctx context.Context, id string) (*domain.Event, error)

	// ListUpcoming returns events whose start time is in the future,
	// ordered per sort (store-native order for domain.SortNone)
	ListUpcoming(ctx context.Context, sort domain.SortOrder) ([]*domain.Event, error)
}

// BookingRepository handles persistence for bookings. The booking ledger is
// the sole authority on occupancy: counts are always computed from its rows.
type BookingRepository interface {
	// Join atomically admits a booking for (eventID, userID) if the event
	// exists, has not started, has free capacity, and the user has not
	// booked it yet. Concurrent joins for the same event are serialized;
	// joins for different events do not block each other.
	Join(ctx context.Context, eventID, userID string) (*domain.Booking, error)

	// Delete removes the booking for (eventID, userID), returning
	// domain.ErrBookingNotFound when no such booking exists
	Delete(ctx context.Context, eventID, userID string) error

	// CountByEvent returns the number of bookings for an event
	CountByEvent(ctx context.Context, eventID string) (int, error)
}

// UserDirectory is the read-only view over the external user collaborator.
type UserDirectory interface {
	// ListByEvent returns the users booked into an event; an event with no
	// bookings yields an empty list, not an error
	ListByEvent(ctx context.Context, eventID string) ([]domain.User, error)
}

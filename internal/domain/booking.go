package domain

import "time"

// Booking links one user to one event. The (user, event) pair is unique:
// a booking either exists or it does not, there is no update operation.
type Booking struct {
	UserID    string    `json:"user_id"`
	EventID   string    `json:"event_id"`
	CreatedAt time.Time `json:"created_at"`
}

// BookingEventType identifies the kind of booking domain event published
// to the message bus.
type BookingEventType string

const (
	BookingEventCreated   BookingEventType = "booking.created"
	BookingEventCancelled BookingEventType = "booking.cancelled"
)

// BookingEvent is the message published after a booking changes state.
type BookingEvent struct {
	EventID   string           `json:"event_id"`
	Type      BookingEventType `json:"type"`
	UserID    string           `json:"user_id"`
	TargetID  string           `json:"target_event_id"`
	Timestamp time.Time        `json:"timestamp"`
}

// NewBookingEvent builds a BookingEvent for the given booking.
func NewBookingEvent(t BookingEventType, b *Booking, eventID string) *BookingEvent {
	return &BookingEvent{
		EventID:   eventID,
		Type:      t,
		UserID:    b.UserID,
		TargetID:  b.EventID,
		Timestamp: time.Now().UTC(),
	}
}

// Key returns the partition key: all events for one target event stay ordered.
func (e *BookingEvent) Key() string {
	return e.TargetID
}

package dto

import "time"

// JoinEventRequest represents a request to claim a seat in an event
type JoinEventRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// JoinEventResponse represents the outcome of a successful join
type JoinEventResponse struct {
	EventID  string    `json:"event_id"`
	UserID   string    `json:"user_id"`
	BookedAt time.Time `json:"booked_at"`
}

// CancelBookingRequest represents a request to cancel a booking
type CancelBookingRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// CancelBookingResponse represents the outcome of a cancellation
type CancelBookingResponse struct {
	EventID string `json:"event_id"`
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

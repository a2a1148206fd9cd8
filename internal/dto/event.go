package dto

import (
	"time"

	"github.com/Abhiram86/event-management-api/internal/domain"
)

// CreateEventRequest represents a request to create a new event
type CreateEventRequest struct {
	Title    string    `json:"title" binding:"required"`
	StartsAt time.Time `json:"starts_at" binding:"required"`
	Location string    `json:"location" binding:"required"`
	Capacity int       `json:"capacity" binding:"required"`
}

// EventResponse represents an event in API responses
type EventResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	StartsAt  time.Time `json:"starts_at"`
	Location  string    `json:"location"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
}

// EventDetailResponse is an event together with its derived occupancy and,
// when requested, the list of booked users.
type EventDetailResponse struct {
	EventResponse
	Booked          int            `json:"booked"`
	Remaining       int            `json:"remaining"`
	PercentCapacity float64        `json:"percent_capacity"`
	Users           []UserResponse `json:"users,omitempty"`
}

// UserResponse represents a booked user in API responses
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// EventFromDomain converts a domain Event to an EventResponse
func EventFromDomain(e *domain.Event) EventResponse {
	return EventResponse{
		ID:        e.ID,
		Title:     e.Title,
		StartsAt:  e.StartsAt,
		Location:  e.Location,
		Capacity:  e.Capacity,
		CreatedAt: e.CreatedAt,
	}
}

// EventDetailFromDomain converts an event plus occupancy (and optional users)
// to an EventDetailResponse
func EventDetailFromDomain(e *domain.Event, occ domain.Occupancy, users []domain.User) *EventDetailResponse {
	resp := &EventDetailResponse{
		EventResponse:   EventFromDomain(e),
		Booked:          occ.Booked,
		Remaining:       occ.Remaining,
		PercentCapacity: occ.PercentCapacity,
	}
	for _, u := range users {
		resp.Users = append(resp.Users, UserResponse{ID: u.ID, Name: u.Name, Email: u.Email})
	}
	return resp
}

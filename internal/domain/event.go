package domain

import "time"

// Event represents a capacity-bounded event that users can book a seat in.
// Capacity is immutable after creation and always greater than zero.
type Event struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	StartsAt  time.Time `json:"starts_at"`
	Location  string    `json:"location"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
}

// HasStarted reports whether the event has already started at the given time.
func (e *Event) HasStarted(now time.Time) bool {
	return !e.StartsAt.After(now)
}

// Occupancy holds booking-derived metrics for an event. The booking ledger
// is the sole authority: these numbers are computed by counting ledger rows
// at read time, never from a stored counter.
type Occupancy struct {
	Booked          int     `json:"booked"`
	Remaining       int     `json:"remaining"`
	PercentCapacity float64 `json:"percent_capacity"`
}

// NewOccupancy derives occupancy metrics from a booked count and capacity.
// Capacity is enforced > 0 at creation, so the division is safe.
func NewOccupancy(booked, capacity int) Occupancy {
	return Occupancy{
		Booked:          booked,
		Remaining:       capacity - booked,
		PercentCapacity: float64(booked) / float64(capacity) * 100,
	}
}

// SortOrder enumerates the accepted orderings for upcoming-event listings.
type SortOrder string

const (
	SortNone          SortOrder = ""
	SortStartTimeAsc  SortOrder = "asc"
	SortStartTimeDesc SortOrder = "desc"
	SortLocation      SortOrder = "location"
)

// ParseSortOrder validates a user-supplied sort value. An empty value means
// store-native order; anything else outside the known set is rejected.
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(s) {
	case SortNone, SortStartTimeAsc, SortStartTimeDesc, SortLocation:
		return SortOrder(s), nil
	default:
		return SortNone, ErrInvalidSortBy
	}
}

package domain

import (
	"errors"
	"testing"
	"time"
)

func TestParseSortOrder(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    SortOrder
		wantErr bool
	}{
		{name: "empty means store-native order", input: "", want: SortNone},
		{name: "ascending start time", input: "asc", want: SortStartTimeAsc},
		{name: "descending start time", input: "desc", want: SortStartTimeDesc},
		{name: "location", input: "location", want: SortLocation},
		{name: "unknown value rejected", input: "title", wantErr: true},
		{name: "case sensitive", input: "ASC", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSortOrder(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSortBy) {
					t.Errorf("expected ErrInvalidSortBy, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestNewOccupancy(t *testing.T) {
	tests := []struct {
		name          string
		booked        int
		capacity      int
		wantRemaining int
		wantPercent   float64
	}{
		{name: "empty event", booked: 0, capacity: 10, wantRemaining: 10, wantPercent: 0},
		{name: "half full", booked: 5, capacity: 10, wantRemaining: 5, wantPercent: 50},
		{name: "full event", booked: 10, capacity: 10, wantRemaining: 0, wantPercent: 100},
		{name: "single seat", booked: 1, capacity: 1, wantRemaining: 0, wantPercent: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			occ := NewOccupancy(tt.booked, tt.capacity)
			if occ.Booked != tt.booked {
				t.Errorf("expected booked %d, got %d", tt.booked, occ.Booked)
			}
			if occ.Remaining != tt.wantRemaining {
				t.Errorf("expected remaining %d, got %d", tt.wantRemaining, occ.Remaining)
			}
			if occ.PercentCapacity != tt.wantPercent {
				t.Errorf("expected percent %.1f, got %.1f", tt.wantPercent, occ.PercentCapacity)
			}
		})
	}
}

func TestEvent_HasStarted(t *testing.T) {
	now := time.Now()
	future := &Event{StartsAt: now.Add(time.Hour)}
	past := &Event{StartsAt: now.Add(-time.Hour)}
	exact := &Event{StartsAt: now}

	if future.HasStarted(now) {
		t.Error("future event should not have started")
	}
	if !past.HasStarted(now) {
		t.Error("past event should have started")
	}
	// An event starting exactly now is no longer joinable.
	if !exact.HasStarted(now) {
		t.Error("event starting exactly now should count as started")
	}
}

func TestErrorClassification(t *testing.T) {
	validation := []error{
		ErrInvalidEventID, ErrInvalidUserID, ErrMissingTitle, ErrMissingLocation,
		ErrMissingStartsAt, ErrStartsInPast, ErrInvalidCapacity, ErrInvalidSortBy,
	}
	for _, err := range validation {
		if !IsValidationError(err) {
			t.Errorf("%v should be a validation error", err)
		}
		if IsNotFoundError(err) || IsConflictError(err) {
			t.Errorf("%v should not be not-found or conflict", err)
		}
	}

	notFound := []error{ErrEventNotFound, ErrBookingNotFound}
	for _, err := range notFound {
		if !IsNotFoundError(err) {
			t.Errorf("%v should be a not found error", err)
		}
	}

	conflicts := []error{ErrAlreadyBooked, ErrEventFull, ErrEventInPast}
	for _, err := range conflicts {
		if !IsConflictError(err) {
			t.Errorf("%v should be a conflict error", err)
		}
		if IsValidationError(err) || IsNotFoundError(err) {
			t.Errorf("%v should not be validation or not-found", err)
		}
	}

	if IsValidationError(errors.New("unknown")) || IsConflictError(errors.New("unknown")) {
		t.Error("unknown errors should not match any classifier")
	}
}

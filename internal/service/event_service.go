package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/Abhiram86/event-management-api/internal/domain"
	"github.com/Abhiram86/event-management-api/internal/dto"
	"github.com/Abhiram86/event-management-api/internal/repository"
	"github.com/Abhiram86/event-management-api/internal/telemetry"
)

// EventService defines the interface for event business logic
type EventService interface {
	// CreateEvent validates and persists a new event
	CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*domain.Event, error)

	// GetEvent returns an event with derived occupancy; when includeUsers
	// is set, the booked users are resolved through the user directory
	GetEvent(ctx context.Context, id string, includeUsers bool) (*dto.EventDetailResponse, error)

	// ListUpcomingEvents returns future events in the requested order
	ListUpcomingEvents(ctx context.Context, sortBy string) ([]*domain.Event, error)
}

// eventService implements EventService
type eventService struct {
	eventRepo   repository.EventRepository
	bookingRepo repository.BookingRepository
	users       repository.UserDirectory
}

// NewEventService creates a new EventService
func NewEventService(
	eventRepo repository.EventRepository,
	bookingRepo repository.BookingRepository,
	users repository.UserDirectory,
) EventService {
	return &eventService{
		eventRepo:   eventRepo,
		bookingRepo: bookingRepo,
		users:       users,
	}
}

// CreateEvent validates the request and persists the event. Creation is not
// idempotent: repeated identical calls create distinct events.
func (s *eventService) CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*domain.Event, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.event.create")
	defer span.End()

	if req == nil {
		span.SetStatus(codes.Error, "missing title")
		return nil, domain.ErrMissingTitle
	}
	if strings.TrimSpace(req.Title) == "" {
		span.SetStatus(codes.Error, "missing title")
		return nil, domain.ErrMissingTitle
	}
	if strings.TrimSpace(req.Location) == "" {
		span.SetStatus(codes.Error, "missing location")
		return nil, domain.ErrMissingLocation
	}
	if req.StartsAt.IsZero() {
		span.SetStatus(codes.Error, "missing starts_at")
		return nil, domain.ErrMissingStartsAt
	}
	if req.StartsAt.Before(time.Now()) {
		span.SetStatus(codes.Error, "starts in past")
		return nil, domain.ErrStartsInPast
	}
	if req.Capacity <= 0 {
		span.SetStatus(codes.Error, "invalid capacity")
		return nil, domain.ErrInvalidCapacity
	}

	event := &domain.Event{
		ID:        uuid.New().String(),
		Title:     strings.TrimSpace(req.Title),
		StartsAt:  req.StartsAt,
		Location:  strings.TrimSpace(req.Location),
		Capacity:  req.Capacity,
		CreatedAt: time.Now().UTC(),
	}

	span.SetAttributes(
		attribute.String("event_id", event.ID),
		attribute.Int("capacity", event.Capacity),
	)

	if err := s.eventRepo.Create(ctx, event); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	return event, nil
}

// GetEvent returns an event with occupancy derived from the booking ledger
func (s *eventService) GetEvent(ctx context.Context, id string, includeUsers bool) (*dto.EventDetailResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.event.get")
	defer span.End()

	if id == "" {
		span.SetStatus(codes.Error, "invalid event id")
		return nil, domain.ErrInvalidEventID
	}

	span.SetAttributes(
		attribute.String("event_id", id),
		attribute.Bool("include_users", includeUsers),
	)

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	booked, err := s.bookingRepo.CountByEvent(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var users []domain.User
	if includeUsers {
		users, err = s.users.ListByEvent(ctx, id)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
	}

	span.SetAttributes(attribute.Int("booked", booked))
	span.SetStatus(codes.Ok, "")
	return dto.EventDetailFromDomain(event, domain.NewOccupancy(booked, event.Capacity), users), nil
}

// ListUpcomingEvents validates sortBy and returns future events
func (s *eventService) ListUpcomingEvents(ctx context.Context, sortBy string) ([]*domain.Event, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.event.list_upcoming")
	defer span.End()

	sort, err := domain.ParseSortOrder(sortBy)
	if err != nil {
		span.SetStatus(codes.Error, "invalid sort_by")
		return nil, err
	}

	span.SetAttributes(attribute.String("sort", string(sort)))

	events, err := s.eventRepo.ListUpcoming(ctx, sort)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("count", len(events)))
	span.SetStatus(codes.Ok, "")
	return events, nil
}

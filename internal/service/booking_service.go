package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/Abhiram86/event-management-api/internal/domain"
	"github.com/Abhiram86/event-management-api/internal/dto"
	"github.com/Abhiram86/event-management-api/internal/logger"
	"github.com/Abhiram86/event-management-api/internal/repository"
	"github.com/Abhiram86/event-management-api/internal/telemetry"
)

// BookingService defines the interface for booking business logic
type BookingService interface {
	// JoinEvent claims one seat in an event for a user
	JoinEvent(ctx context.Context, eventID, userID string) (*dto.JoinEventResponse, error)

	// CancelBooking releases a user's seat in an event
	CancelBooking(ctx context.Context, eventID, userID string) (*dto.CancelBookingResponse, error)
}

// bookingService implements BookingService
type bookingService struct {
	bookingRepo repository.BookingRepository
	publisher   EventPublisher
}

// NewBookingService creates a new booking service. A nil publisher degrades
// to a no-op one.
func NewBookingService(bookingRepo repository.BookingRepository, publisher EventPublisher) BookingService {
	if publisher == nil {
		publisher = NewNoOpEventPublisher()
	}
	return &bookingService{
		bookingRepo: bookingRepo,
		publisher:   publisher,
	}
}

// JoinEvent validates identifiers and delegates the serialized
// check-and-insert to the repository. All business-rule checks happen inside
// the repository's transaction, under the event row lock.
func (s *bookingService) JoinEvent(ctx context.Context, eventID, userID string) (*dto.JoinEventResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.booking.join")
	defer span.End()

	if eventID == "" {
		span.SetStatus(codes.Error, "invalid event id")
		return nil, domain.ErrInvalidEventID
	}
	if userID == "" {
		span.SetStatus(codes.Error, "invalid user id")
		return nil, domain.ErrInvalidUserID
	}

	span.SetAttributes(
		attribute.String("event_id", eventID),
		attribute.String("user_id", userID),
	)

	booking, err := s.bookingRepo.Join(ctx, eventID, userID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	// Publishing is best-effort: the booking is already committed, so a
	// bus failure must not fail the request.
	if err := s.publisher.PublishBookingCreated(ctx, booking); err != nil {
		logger.Get().Warn("failed to publish booking created event",
			zap.String("event_id", eventID),
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}

	span.SetStatus(codes.Ok, "")
	return &dto.JoinEventResponse{
		EventID:  booking.EventID,
		UserID:   booking.UserID,
		BookedAt: booking.CreatedAt,
	}, nil
}

// CancelBooking removes the booking for (eventID, userID)
func (s *bookingService) CancelBooking(ctx context.Context, eventID, userID string) (*dto.CancelBookingResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.booking.cancel")
	defer span.End()

	if eventID == "" {
		span.SetStatus(codes.Error, "invalid event id")
		return nil, domain.ErrInvalidEventID
	}
	if userID == "" {
		span.SetStatus(codes.Error, "invalid user id")
		return nil, domain.ErrInvalidUserID
	}

	span.SetAttributes(
		attribute.String("event_id", eventID),
		attribute.String("user_id", userID),
	)

	if err := s.bookingRepo.Delete(ctx, eventID, userID); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	booking := &domain.Booking{UserID: userID, EventID: eventID}
	if err := s.publisher.PublishBookingCancelled(ctx, booking); err != nil {
		logger.Get().Warn("failed to publish booking cancelled event",
			zap.String("event_id", eventID),
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}

	span.SetStatus(codes.Ok, "")
	return &dto.CancelBookingResponse{
		EventID: eventID,
		UserID:  userID,
		Message: "booking cancelled",
	}, nil
}

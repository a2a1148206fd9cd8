package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/Abhiram86/event-management-api/internal/domain"
	"github.com/Abhiram86/event-management-api/internal/dto"
	"github.com/Abhiram86/event-management-api/internal/service"
	"github.com/Abhiram86/event-management-api/internal/telemetry"
)

// EventHandler handles event HTTP requests
type EventHandler struct {
	eventService service.EventService
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventService service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// CreateEvent handles POST /events
func (h *EventHandler) CreateEvent(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.event.create")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid request")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid request body",
			Code:    "INVALID_REQUEST",
			Message: err.Error(),
		})
		return
	}

	event, err := h.eventService.CreateEvent(ctx, &req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetAttributes(attribute.String("event_id", event.ID))
	span.SetStatus(codes.Ok, "")
	c.JSON(http.StatusCreated, dto.SuccessResponse{
		Success: true,
		Data:    dto.EventFromDomain(event),
	})
}

// ListEvents handles GET /events
func (h *EventHandler) ListEvents(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.event.list")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	sortBy := c.Query("sort_by")
	span.SetAttributes(attribute.String("sort_by", sortBy))

	events, err := h.eventService.ListUpcomingEvents(ctx, sortBy)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	resp := make([]dto.EventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, dto.EventFromDomain(e))
	}

	span.SetAttributes(attribute.Int("count", len(resp)))
	span.SetStatus(codes.Ok, "")
	c.JSON(http.StatusOK, dto.SuccessResponse{
		Success: true,
		Data:    resp,
	})
}

// GetEvent handles GET /events/:id
func (h *EventHandler) GetEvent(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.event.get")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	id := c.Param("id")
	includeUsers, _ := strconv.ParseBool(c.DefaultQuery("users", "false"))

	span.SetAttributes(
		attribute.String("event_id", id),
		attribute.Bool("include_users", includeUsers),
	)

	event, err := h.eventService.GetEvent(ctx, id, includeUsers)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	c.JSON(http.StatusOK, dto.SuccessResponse{
		Success: true,
		Data:    event,
	})
}

// handleError converts domain errors to HTTP responses. Unknown errors are
// reported as a generic internal failure: storage error text stays out of
// the response body.
func handleError(c *gin.Context, err error) {
	switch {
	case domain.IsValidationError(err):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: err.Error(),
			Code:  "INVALID_ARGUMENT",
		})
	case domain.IsNotFoundError(err):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: err.Error(),
			Code:  "NOT_FOUND",
		})
	case domain.IsConflictError(err):
		c.JSON(http.StatusConflict, dto.ErrorResponse{
			Error: err.Error(),
			Code:  conflictCode(err),
		})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "internal server error",
			Code:  "INTERNAL",
		})
	}
}

func conflictCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrAlreadyBooked):
		return "ALREADY_BOOKED"
	case errors.Is(err, domain.ErrEventFull):
		return "EVENT_FULL"
	case errors.Is(err, domain.ErrEventInPast):
		return "EVENT_IN_PAST"
	default:
		return "CONFLICT"
	}
}

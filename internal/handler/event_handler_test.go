package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abhiram86/event-management-api/internal/domain"
	"github.com/Abhiram86/event-management-api/internal/dto"
)

// MockEventService is a map-backed implementation of service.EventService
type MockEventService struct {
	events    map[string]*domain.Event
	booked    map[string]int
	users     map[string][]domain.User
	createErr error
	getErr    error
}

func NewMockEventService() *MockEventService {
	return &MockEventService{
		events: make(map[string]*domain.Event),
		booked: make(map[string]int),
		users:  make(map[string][]domain.User),
	}
}

func (m *MockEventService) CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*domain.Event, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	if req.Capacity <= 0 {
		return nil, domain.ErrInvalidCapacity
	}
	event := &domain.Event{
		ID:        "event-123",
		Title:     req.Title,
		StartsAt:  req.StartsAt,
		Location:  req.Location,
		Capacity:  req.Capacity,
		CreatedAt: time.Now(),
	}
	m.events[event.ID] = event
	return event, nil
}

func (m *MockEventService) GetEvent(ctx context.Context, id string, includeUsers bool) (*dto.EventDetailResponse, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	event, ok := m.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	var users []domain.User
	if includeUsers {
		users = m.users[id]
	}
	return dto.EventDetailFromDomain(event, domain.NewOccupancy(m.booked[id], event.Capacity), users), nil
}

func (m *MockEventService) ListUpcomingEvents(ctx context.Context, sortBy string) ([]*domain.Event, error) {
	if _, err := domain.ParseSortOrder(sortBy); err != nil {
		return nil, err
	}
	events := make([]*domain.Event, 0, len(m.events))
	for _, e := range m.events {
		events = append(events, e)
	}
	return events, nil
}

func (m *MockEventService) AddEvent(event *domain.Event) {
	m.events[event.ID] = event
}

func setupEventRouter(h *EventHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	events := router.Group("/events")
	{
		events.POST("", h.CreateEvent)
		events.GET("", h.ListEvents)
		events.GET("/:id", h.GetEvent)
	}

	return router
}

func TestEventHandler_CreateEvent(t *testing.T) {
	mockSvc := NewMockEventService()
	router := setupEventRouter(NewEventHandler(mockSvc))

	t.Run("valid request returns 201", func(t *testing.T) {
		body, _ := json.Marshal(dto.CreateEventRequest{
			Title:    "Go Meetup",
			StartsAt: time.Now().Add(24 * time.Hour),
			Location: "Berlin",
			Capacity: 50,
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)

		var resp dto.SuccessResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
	})

	t.Run("malformed body returns 400", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader([]byte("{not json")))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "INVALID_REQUEST", resp.Code)
	})

	t.Run("missing fields return 400", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader([]byte(`{"title":"Go Meetup"}`)))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("domain validation maps to 400", func(t *testing.T) {
		body, _ := json.Marshal(gin.H{
			"title":     "Go Meetup",
			"starts_at": time.Now().Add(24 * time.Hour),
			"location":  "Berlin",
			"capacity":  -1,
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "INVALID_ARGUMENT", resp.Code)
	})

	t.Run("storage failure returns 500 without detail", func(t *testing.T) {
		failing := NewMockEventService()
		failing.createErr = errors.New("pq: connection refused")
		failRouter := setupEventRouter(NewEventHandler(failing))

		body, _ := json.Marshal(dto.CreateEventRequest{
			Title:    "Go Meetup",
			StartsAt: time.Now().Add(24 * time.Hour),
			Location: "Berlin",
			Capacity: 50,
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		failRouter.ServeHTTP(w, req)

		require.Equal(t, http.StatusInternalServerError, w.Code)

		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "INTERNAL", resp.Code)
		assert.NotContains(t, w.Body.String(), "connection refused")
	})
}

func TestEventHandler_ListEvents(t *testing.T) {
	mockSvc := NewMockEventService()
	mockSvc.AddEvent(&domain.Event{
		ID:       "event-1",
		Title:    "Go Meetup",
		StartsAt: time.Now().Add(24 * time.Hour),
		Location: "Berlin",
		Capacity: 50,
	})
	router := setupEventRouter(NewEventHandler(mockSvc))

	t.Run("list returns 200", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/events", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("valid sort accepted", func(t *testing.T) {
		for _, sortBy := range []string{"asc", "desc", "location"} {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/events?sort_by="+sortBy, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code, "sort_by=%s", sortBy)
		}
	})

	t.Run("invalid sort returns 400", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/events?sort_by=title", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "INVALID_ARGUMENT", resp.Code)
	})
}

func TestEventHandler_GetEvent(t *testing.T) {
	mockSvc := NewMockEventService()
	mockSvc.AddEvent(&domain.Event{
		ID:       "event-1",
		Title:    "Go Meetup",
		StartsAt: time.Now().Add(24 * time.Hour),
		Location: "Berlin",
		Capacity: 4,
	})
	mockSvc.booked["event-1"] = 2
	mockSvc.users["event-1"] = []domain.User{
		{ID: "user-1", Name: "Alice", Email: "alice@example.com"},
	}
	router := setupEventRouter(NewEventHandler(mockSvc))

	t.Run("existing event returns occupancy", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/events/event-1", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success bool                    `json:"success"`
			Data    dto.EventDetailResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp.Data.Booked)
		assert.Equal(t, 2, resp.Data.Remaining)
		assert.Equal(t, 50.0, resp.Data.PercentCapacity)
		assert.Empty(t, resp.Data.Users)
	})

	t.Run("users resolved on request", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/events/event-1?users=true", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success bool                    `json:"success"`
			Data    dto.EventDetailResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Data.Users, 1)
	})

	t.Run("unknown event returns 404", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/events/missing", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusNotFound, w.Code)

		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "NOT_FOUND", resp.Code)
	})
}

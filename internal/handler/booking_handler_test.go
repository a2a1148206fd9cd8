package handler

import (
	"bytes"
	"context"
	"encoding/json"
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

// MockBookingService returns configured errors, or success when nil
type MockBookingService struct {
	joinErr   error
	cancelErr error
}

func (m *MockBookingService) JoinEvent(ctx context.Context, eventID, userID string) (*dto.JoinEventResponse, error) {
	if m.joinErr != nil {
		return nil, m.joinErr
	}
	return &dto.JoinEventResponse{
		EventID:  eventID,
		UserID:   userID,
		BookedAt: time.Now(),
	}, nil
}

func (m *MockBookingService) CancelBooking(ctx context.Context, eventID, userID string) (*dto.CancelBookingResponse, error) {
	if m.cancelErr != nil {
		return nil, m.cancelErr
	}
	return &dto.CancelBookingResponse{
		EventID: eventID,
		UserID:  userID,
		Message: "booking cancelled",
	}, nil
}

func setupBookingRouter(h *BookingHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	events := router.Group("/events")
	{
		events.POST("/:id/join", h.JoinEvent)
		events.DELETE("/:id/booking", h.CancelBooking)
	}

	return router
}

func joinRequest(userID string) *http.Request {
	body, _ := json.Marshal(dto.JoinEventRequest{UserID: userID})
	req := httptest.NewRequest(http.MethodPost, "/events/event-1/join", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestBookingHandler_JoinEvent(t *testing.T) {
	t.Run("successful join returns 201", func(t *testing.T) {
		router := setupBookingRouter(NewBookingHandler(&MockBookingService{}))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, joinRequest("user-1"))

		require.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			Success bool                  `json:"success"`
			Data    dto.JoinEventResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "event-1", resp.Data.EventID)
		assert.Equal(t, "user-1", resp.Data.UserID)
	})

	t.Run("missing user id returns 400", func(t *testing.T) {
		router := setupBookingRouter(NewBookingHandler(&MockBookingService{}))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/events/event-1/join", bytes.NewReader([]byte(`{}`)))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "INVALID_REQUEST", resp.Code)
	})

	t.Run("conflict errors map to 409 with distinct codes", func(t *testing.T) {
		tests := []struct {
			err      error
			wantCode string
		}{
			{domain.ErrAlreadyBooked, "ALREADY_BOOKED"},
			{domain.ErrEventFull, "EVENT_FULL"},
			{domain.ErrEventInPast, "EVENT_IN_PAST"},
		}

		for _, tt := range tests {
			router := setupBookingRouter(NewBookingHandler(&MockBookingService{joinErr: tt.err}))

			w := httptest.NewRecorder()
			router.ServeHTTP(w, joinRequest("user-1"))

			require.Equal(t, http.StatusConflict, w.Code, tt.wantCode)

			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.Code)
		}
	})

	t.Run("unknown event returns 404", func(t *testing.T) {
		router := setupBookingRouter(NewBookingHandler(&MockBookingService{joinErr: domain.ErrEventNotFound}))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, joinRequest("user-1"))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestBookingHandler_CancelBooking(t *testing.T) {
	cancelRequest := func(userID string) *http.Request {
		body, _ := json.Marshal(dto.CancelBookingRequest{UserID: userID})
		req := httptest.NewRequest(http.MethodDelete, "/events/event-1/booking", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		return req
	}

	t.Run("successful cancel returns 200", func(t *testing.T) {
		router := setupBookingRouter(NewBookingHandler(&MockBookingService{}))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, cancelRequest("user-1"))

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success bool                      `json:"success"`
			Data    dto.CancelBookingResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "booking cancelled", resp.Data.Message)
	})

	t.Run("missing booking returns 404", func(t *testing.T) {
		router := setupBookingRouter(NewBookingHandler(&MockBookingService{cancelErr: domain.ErrBookingNotFound}))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, cancelRequest("user-1"))

		require.Equal(t, http.StatusNotFound, w.Code)

		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "NOT_FOUND", resp.Code)
	})

	t.Run("missing user id returns 400", func(t *testing.T) {
		router := setupBookingRouter(NewBookingHandler(&MockBookingService{}))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/events/event-1/booking", bytes.NewReader([]byte(`{}`)))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestPostgresUserDirectory_ListByEvent(t *testing.T) {
	pool := getPostgresPool(t)
	defer pool.Close()

	users := NewPostgresUserDirectory(pool)
	bookings := NewPostgresBookingRepository(pool, 5*time.Second)
	ctx := context.Background()

	eventID := insertTestEvent(t, pool, 5, time.Now().Add(24*time.Hour))

	userID := uuid.New().String()
	_, err := pool.Exec(ctx, `INSERT INTO users (id, name, email) VALUES ($1, $2, $3)`,
		userID, "Alice", "alice@example.com")
	if err != nil {
		t.Fatalf("insert user: %v", err)
	}
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, userID)
	})

	t.Run("no bookings yields empty list", func(t *testing.T) {
		got, err := users.ListByEvent(ctx, eventID)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if got == nil {
			t.Fatal("expected empty list, got nil")
		}
		if len(got) != 0 {
			t.Errorf("expected no users, got %d", len(got))
		}
	})

	t.Run("booked users resolved", func(t *testing.T) {
		if _, err := bookings.Join(ctx, eventID, userID); err != nil {
			t.Fatalf("seed booking: %v", err)
		}

		got, err := users.ListByEvent(ctx, eventID)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("expected 1 user, got %d", len(got))
		}
		if got[0].Name != "Alice" || got[0].Email != "alice@example.com" {
			t.Errorf("unexpected user: %+v", got[0])
		}
	})
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/Abhiram86/event-management-api/internal/domain"
	"github.com/Abhiram86/event-management-api/internal/telemetry"
)

// PostgreSQL error codes surfaced by the booking path
const (
	pgUniqueViolation  = "23505"
	pgLockNotAvailable = "55P03"
)

// PostgresBookingRepository implements BookingRepository using PostgreSQL
// with pgxpool. Join relies on a row-level exclusive lock on the event row
// (SELECT ... FOR UPDATE): the capacity check and the booking insert happen
// under the same lock, so two transactions can never both observe the last
// free seat. The database is the serialization point, which keeps the
// invariant intact across multiple service instances.
type PostgresBookingRepository struct {
	pool        *pgxpool.Pool
	lockTimeout time.Duration
}

// NewPostgresBookingRepository creates a new PostgresBookingRepository.
// lockTimeout bounds how long a join waits on a contended event row before
// failing instead of queueing indefinitely; zero disables the bound.
func NewPostgresBookingRepository(pool *pgxpool.Pool, lockTimeout time.Duration) *PostgresBookingRepository {
	return &PostgresBookingRepository{pool: pool, lockTimeout: lockTimeout}
}

// Join atomically admits a booking for (eventID, userID).
//
// A naive read-then-write would let two transactions read the same occupancy
// snapshot and both insert, overbooking the event. The FOR UPDATE lock on
// the event row serializes concurrent joins for the same event: the second
// transaction blocks on the SELECT until the first commits, then re-reads
// the committed state. Joins for different events lock different rows and
// proceed in parallel.
func (r *PostgresBookingRepository) Join(ctx context.Context, eventID, userID string) (booking *domain.Booking, err error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.booking.join")
	defer span.End()

	span.SetAttributes(
		attribute.String("event_id", eventID),
		attribute.String("user_id", userID),
	)

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	// Rollback on every non-commit exit path; after a successful commit
	// this is a no-op.
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if r.lockTimeout > 0 {
		// SET LOCAL scopes the timeout to this transaction. The value
		// cannot be a bind parameter.
		_, err = tx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds()))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, fmt.Errorf("failed to set lock timeout: %w", err)
		}
	}

	// Acquire the exclusive row lock. Everything below reads state that no
	// concurrent join for this event can change until we commit.
	var capacity int
	var startsAt time.Time
	err = tx.QueryRow(ctx,
		`SELECT capacity, starts_at FROM events WHERE id = $1 FOR UPDATE`,
		eventID,
	).Scan(&capacity, &startsAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "event not found")
			return nil, domain.ErrEventNotFound
		}
		if isLockTimeout(err) {
			span.SetStatus(codes.Error, "lock timeout")
			return nil, fmt.Errorf("timed out waiting for event row lock: %w", err)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to lock event row: %w", err)
	}

	var alreadyBooked bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM bookings WHERE event_id = $1 AND user_id = $2)`,
		eventID, userID,
	).Scan(&alreadyBooked)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to check existing booking: %w", err)
	}
	if alreadyBooked {
		span.SetStatus(codes.Error, "already booked")
		return nil, domain.ErrAlreadyBooked
	}

	if !startsAt.After(time.Now()) {
		span.SetStatus(codes.Error, "event in past")
		return nil, domain.ErrEventInPast
	}

	var booked int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM bookings WHERE event_id = $1`,
		eventID,
	).Scan(&booked)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}
	if booked >= capacity {
		span.SetStatus(codes.Error, "event full")
		return nil, domain.ErrEventFull
	}

	booking = &domain.Booking{
		UserID:    userID,
		EventID:   eventID,
		CreatedAt: time.Now().UTC(),
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO bookings (event_id, user_id, created_at) VALUES ($1, $2, $3)`,
		booking.EventID, booking.UserID, booking.CreatedAt,
	)
	if err != nil {
		// The row lock should make this unreachable, but the unique
		// constraint on (event_id, user_id) stays as defense-in-depth.
		if isUniqueViolation(err) {
			span.SetStatus(codes.Error, "already booked")
			return nil, domain.ErrAlreadyBooked
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to insert booking: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		if isUniqueViolation(err) {
			span.SetStatus(codes.Error, "already booked")
			return nil, domain.ErrAlreadyBooked
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to commit booking: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return booking, nil
}

// Delete removes a booking by its (eventID, userID) pair. No lock is taken:
// a delete only frees capacity, and the second of two racing deletes simply
// sees zero rows affected.
func (r *PostgresBookingRepository) Delete(ctx context.Context, eventID, userID string) error {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.booking.delete")
	defer span.End()

	span.SetAttributes(
		attribute.String("event_id", eventID),
		attribute.String("user_id", userID),
	)

	result, err := r.pool.Exec(ctx,
		`DELETE FROM bookings WHERE event_id = $1 AND user_id = $2`,
		eventID, userID,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to delete booking: %w", err)
	}

	if result.RowsAffected() == 0 {
		span.SetStatus(codes.Error, "not found")
		return domain.ErrBookingNotFound
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// CountByEvent returns the number of bookings for an event
func (r *PostgresBookingRepository) CountByEvent(ctx context.Context, eventID string) (int, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.booking.count_by_event")
	defer span.End()

	span.SetAttributes(attribute.String("event_id", eventID))

	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM bookings WHERE event_id = $1`,
		eventID,
	).Scan(&count)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	span.SetAttributes(attribute.Int("count", count))
	span.SetStatus(codes.Ok, "")
	return count, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func isLockTimeout(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgLockNotAvailable
}

// Ensure PostgresBookingRepository implements BookingRepository
var _ BookingRepository = (*PostgresBookingRepository)(nil)

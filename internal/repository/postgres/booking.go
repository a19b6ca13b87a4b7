package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/jwalitptl/marketplace-api/pkg/errors"

	"github.com/jwalitptl/marketplace-api/internal/model"
)

// slotLockKey derives the advisory lock key serializing bookings for one
// provider on one day.
func slotLockKey(providerID uuid.UUID, date time.Time) int64 {
	h := fnv.New64a()
	h.Write(providerID[:])
	h.Write([]byte(date.Format(model.DateOnly)))
	return int64(h.Sum64())
}

// Create inserts a booking while holding pg_advisory_xact_lock for the
// provider's day. Concurrent requests for the same provider and date queue
// on the lock, so the verify callback always sees every booking committed by
// the requests that went before it.
func (r *bookingRepository) Create(ctx context.Context, booking *model.Booking, verify func(ctx context.Context) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", slotLockKey(booking.ProviderID, booking.BookingDate)); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to acquire slot lock: %w", err)
	}

	if verify != nil {
		if err := verify(ctx); err != nil {
			tx.Rollback()
			return err
		}
	}

	query := `
		INSERT INTO bookings (
			id, customer_id, provider_id, service_id,
			booking_date, booking_time, address, amount, status,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	booking.ID = uuid.New()
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = time.Now()

	_, err = tx.ExecContext(ctx, query,
		booking.ID,
		booking.CustomerID,
		booking.ProviderID,
		booking.ServiceID,
		booking.BookingDate,
		booking.BookingTime,
		booking.Address,
		booking.Amount,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return tx.Commit()
}

func (r *bookingRepository) Get(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	query := `
		SELECT id, customer_id, provider_id, service_id,
			   booking_date, booking_time, address, amount, status,
			   created_at, updated_at
		FROM bookings
		WHERE id = $1
	`
	var booking model.Booking
	err := r.db.GetContext(ctx, &booking, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("booking", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.BookingStatus) error {
	query := `
		UPDATE bookings
		SET status = $1, updated_at = $2
		WHERE id = $3
	`
	result, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("booking", nil)
	}
	return nil
}

func (r *bookingRepository) List(ctx context.Context, filters *model.BookingFilters) ([]*model.Booking, error) {
	query := `
		SELECT id, customer_id, provider_id, service_id,
			   booking_date, booking_time, address, amount, status,
			   created_at, updated_at
		FROM bookings
		WHERE 1=1
	`
	args := []interface{}{}
	argCount := 1

	if filters != nil {
		if filters.CustomerID != uuid.Nil {
			query += fmt.Sprintf(" AND customer_id = $%d", argCount)
			args = append(args, filters.CustomerID)
			argCount++
		}
		if filters.ProviderID != uuid.Nil {
			query += fmt.Sprintf(" AND provider_id = $%d", argCount)
			args = append(args, filters.ProviderID)
			argCount++
		}
		if filters.Status != "" {
			query += fmt.Sprintf(" AND status = $%d", argCount)
			args = append(args, filters.Status)
			argCount++
		}
	}

	query += " ORDER BY created_at DESC"

	var bookings []*model.Booking
	err := r.db.SelectContext(ctx, &bookings, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (r *bookingRepository) ListByProviderAndDate(ctx context.Context, providerID uuid.UUID, date time.Time) ([]*model.Booking, error) {
	query := `
		SELECT id, customer_id, provider_id, service_id,
			   booking_date, booking_time, address, amount, status,
			   created_at, updated_at
		FROM bookings
		WHERE provider_id = $1 AND booking_date = $2
		ORDER BY booking_time ASC
	`
	var bookings []*model.Booking
	err := r.db.SelectContext(ctx, &bookings, query, providerID, date.Format(model.DateOnly))
	if err != nil {
		return nil, fmt.Errorf("failed to list provider bookings: %w", err)
	}
	return bookings, nil
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/jwalitptl/marketplace-api/pkg/errors"

	"github.com/jwalitptl/marketplace-api/internal/model"
)

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	query := `
		INSERT INTO reviews (
			id, booking_id, customer_id, provider_id, rating, comment,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	review.ID = uuid.New()
	review.CreatedAt = time.Now()
	review.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		review.ID,
		review.BookingID,
		review.CustomerID,
		review.ProviderID,
		review.Rating,
		review.Comment,
		review.CreatedAt,
		review.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (r *reviewRepository) Get(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	query := `
		SELECT id, booking_id, customer_id, provider_id, rating, comment,
			   created_at, updated_at
		FROM reviews
		WHERE id = $1
	`
	var review model.Review
	err := r.db.GetContext(ctx, &review, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("review", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return &review, nil
}

func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM reviews
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("review", nil)
	}
	return nil
}

func (r *reviewRepository) ListByProvider(ctx context.Context, providerID uuid.UUID) ([]*model.Review, error) {
	query := `
		SELECT id, booking_id, customer_id, provider_id, rating, comment,
			   created_at, updated_at
		FROM reviews
		WHERE provider_id = $1
		ORDER BY created_at DESC
	`
	var reviews []*model.Review
	err := r.db.SelectContext(ctx, &reviews, query, providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list provider reviews: %w", err)
	}
	return reviews, nil
}

func (r *reviewRepository) GetByBooking(ctx context.Context, bookingID uuid.UUID) (*model.Review, error) {
	query := `
		SELECT id, booking_id, customer_id, provider_id, rating, comment,
			   created_at, updated_at
		FROM reviews
		WHERE booking_id = $1
	`
	var review model.Review
	err := r.db.GetContext(ctx, &review, query, bookingID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("review", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get review by booking: %w", err)
	}
	return &review, nil
}

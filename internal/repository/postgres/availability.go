package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/jwalitptl/marketplace-api/pkg/errors"

	"github.com/jwalitptl/marketplace-api/internal/model"
)

func (r *availabilityRepository) CreateWeekly(ctx context.Context, rule *model.WeeklyAvailability) error {
	query := `
		INSERT INTO weekly_availabilities (
			id, provider_id, weekday, start_time, end_time, is_active,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	rule.ID = uuid.New()
	rule.CreatedAt = time.Now()
	rule.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		rule.ID,
		rule.ProviderID,
		rule.Weekday,
		rule.StartTime,
		rule.EndTime,
		rule.IsActive,
		rule.CreatedAt,
		rule.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create weekly availability: %w", err)
	}
	return nil
}

func (r *availabilityRepository) DeleteWeekly(ctx context.Context, providerID, id uuid.UUID) error {
	query := `
		DELETE FROM weekly_availabilities
		WHERE id = $1 AND provider_id = $2
	`
	result, err := r.db.ExecContext(ctx, query, id, providerID)
	if err != nil {
		return fmt.Errorf("failed to delete weekly availability: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("availability rule", nil)
	}
	return nil
}

func (r *availabilityRepository) ListWeekly(ctx context.Context, providerID uuid.UUID) ([]*model.WeeklyAvailability, error) {
	query := `
		SELECT id, provider_id, weekday, start_time, end_time, is_active,
			   created_at, updated_at
		FROM weekly_availabilities
		WHERE provider_id = $1
		ORDER BY weekday ASC, start_time ASC
	`
	var rules []*model.WeeklyAvailability
	err := r.db.SelectContext(ctx, &rules, query, providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list weekly availabilities: %w", err)
	}
	return rules, nil
}

func (r *availabilityRepository) ListActiveByWeekday(ctx context.Context, providerID uuid.UUID, weekday int) ([]*model.WeeklyAvailability, error) {
	query := `
		SELECT id, provider_id, weekday, start_time, end_time, is_active,
			   created_at, updated_at
		FROM weekly_availabilities
		WHERE provider_id = $1 AND weekday = $2 AND is_active = true
		ORDER BY start_time ASC
	`
	var rules []*model.WeeklyAvailability
	err := r.db.SelectContext(ctx, &rules, query, providerID, weekday)
	if err != nil {
		return nil, fmt.Errorf("failed to list active weekly availabilities: %w", err)
	}
	return rules, nil
}

func (r *availabilityRepository) CreateTimeOff(ctx context.Context, rule *model.TimeOff) error {
	query := `
		INSERT INTO time_offs (
			id, provider_id, start_date, end_date, start_time, end_time, reason,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	rule.ID = uuid.New()
	rule.CreatedAt = time.Now()
	rule.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		rule.ID,
		rule.ProviderID,
		rule.StartDate,
		rule.EndDate,
		rule.StartTime,
		rule.EndTime,
		rule.Reason,
		rule.CreatedAt,
		rule.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create time off: %w", err)
	}
	return nil
}

func (r *availabilityRepository) DeleteTimeOff(ctx context.Context, providerID, id uuid.UUID) error {
	query := `
		DELETE FROM time_offs
		WHERE id = $1 AND provider_id = $2
	`
	result, err := r.db.ExecContext(ctx, query, id, providerID)
	if err != nil {
		return fmt.Errorf("failed to delete time off: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("time off rule", nil)
	}
	return nil
}

func (r *availabilityRepository) ListTimeOff(ctx context.Context, providerID uuid.UUID) ([]*model.TimeOff, error) {
	query := `
		SELECT id, provider_id, start_date, end_date, start_time, end_time, reason,
			   created_at, updated_at
		FROM time_offs
		WHERE provider_id = $1
		ORDER BY start_date ASC
	`
	var rules []*model.TimeOff
	err := r.db.SelectContext(ctx, &rules, query, providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list time offs: %w", err)
	}
	return rules, nil
}

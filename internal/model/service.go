package model

import (
	"github.com/google/uuid"
)

// DefaultServiceDuration is assumed when a service does not declare one, or
// when a booking references a service that no longer exists.
const DefaultServiceDuration = 60 // minutes

type Service struct {
	Base
	ProviderID      uuid.UUID  `json:"provider_id" db:"provider_id"`
	CategoryID      *uuid.UUID `json:"category_id" db:"category_id"`
	Name            string     `json:"name" db:"name"`
	Description     string     `json:"description" db:"description"`
	Price           float64    `json:"price" db:"price"`
	DiscountPrice   *float64   `json:"discount_price,omitempty" db:"discount_price"`
	DurationMinutes int        `json:"duration_minutes" db:"duration_minutes"`
	IsActive        bool       `json:"is_active" db:"is_active"`
}

// EffectiveDuration returns the booking length in minutes, falling back to
// the default for unset or nonsense values.
func (s *Service) EffectiveDuration() int {
	if s == nil || s.DurationMinutes <= 0 {
		return DefaultServiceDuration
	}
	return s.DurationMinutes
}

type Category struct {
	Base
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
}

type CreateServiceRequest struct {
	CategoryID      *uuid.UUID `json:"category_id"`
	Name            string     `json:"name" binding:"required"`
	Description     string     `json:"description"`
	Price           float64    `json:"price" binding:"required,gt=0"`
	DiscountPrice   *float64   `json:"discount_price" binding:"omitempty,gt=0"`
	DurationMinutes int        `json:"duration_minutes" binding:"omitempty,gt=0"`
}

type UpdateServiceRequest struct {
	CategoryID      *uuid.UUID `json:"category_id"`
	Name            *string    `json:"name"`
	Description     *string    `json:"description"`
	Price           *float64   `json:"price" binding:"omitempty,gt=0"`
	DiscountPrice   *float64   `json:"discount_price" binding:"omitempty,gt=0"`
	DurationMinutes *int       `json:"duration_minutes" binding:"omitempty,gt=0"`
	IsActive        *bool      `json:"is_active"`
}

type ServiceFilters struct {
	ProviderID uuid.UUID
	CategoryID uuid.UUID
	SearchTerm string
	MaxPrice   float64
	ActiveOnly bool
}

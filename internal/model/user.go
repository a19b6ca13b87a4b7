package model

import (
	"time"

	"github.com/google/uuid"
)

// User role constants
const (
	RoleCustomer = "customer"
	RoleProvider = "provider"
	RoleAdmin    = "admin"
)

// User represents a marketplace account. Providers additionally carry the
// rating aggregate maintained by the review service.
type User struct {
	Base
	Email        string     `json:"email" db:"email"`
	Name         string     `json:"name" db:"name"`
	Password     string     `json:"password,omitempty" db:"-"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Phone        *string    `json:"phone" db:"phone"`
	Role         string     `json:"role" db:"role"`
	AvgRating    float64    `json:"avg_rating" db:"avg_rating"`
	TotalReviews int        `json:"total_reviews" db:"total_reviews"`
	LastLoginAt  *time.Time `json:"last_login_at" db:"last_login_at"`
}

func (u *User) IsProvider() bool {
	return u.Role == RoleProvider
}

// RegisterRequest represents account creation parameters
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=customer provider"`
}

// LoginRequest represents credential parameters
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is returned on successful authentication
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        *User     `json:"user"`
}

type UserFilters struct {
	Role       string
	SearchTerm string
}

// RatingSummary is the provider aggregate recomputed on review writes.
type RatingSummary struct {
	ProviderID   uuid.UUID `db:"provider_id"`
	AvgRating    float64   `db:"avg_rating"`
	TotalReviews int       `db:"total_reviews"`
}

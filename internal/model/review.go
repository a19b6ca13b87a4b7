package model

import (
	"github.com/google/uuid"
)

type Review struct {
	Base
	BookingID  uuid.UUID `json:"booking_id" db:"booking_id"`
	CustomerID uuid.UUID `json:"customer_id" db:"customer_id"`
	ProviderID uuid.UUID `json:"provider_id" db:"provider_id"`
	Rating     int       `json:"rating" db:"rating"`
	Comment    string    `json:"comment" db:"comment"`
}

type CreateReviewRequest struct {
	BookingID uuid.UUID `json:"booking_id" binding:"required"`
	Rating    int       `json:"rating" binding:"required,min=1,max=5"`
	Comment   string    `json:"comment" binding:"max=2000"`
}

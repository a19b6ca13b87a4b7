package model

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusAccepted  BookingStatus = "accepted"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCanceled  BookingStatus = "canceled"
)

// bookingTransitions is the closed transition table. Pending is the initial
// state; rejected, completed and canceled are terminal; accepted only moves
// to completed.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:  {BookingStatusAccepted, BookingStatusRejected, BookingStatusCanceled},
	BookingStatusAccepted: {BookingStatusCompleted},
}

// CanTransitionTo reports whether the status change is legal.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Occupies reports whether a booking in this status still consumes its slot.
// Canceled and rejected bookings free theirs.
func (s BookingStatus) Occupies() bool {
	return s != BookingStatusCanceled && s != BookingStatusRejected
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusAccepted, BookingStatusRejected,
		BookingStatusCompleted, BookingStatusCanceled:
		return true
	}
	return false
}

// Booking holds a customer's claim on a provider slot. The occupied interval
// is derived from the referenced service's duration at read time, never
// stored.
type Booking struct {
	Base
	CustomerID  uuid.UUID     `json:"customer_id" db:"customer_id"`
	ProviderID  uuid.UUID     `json:"provider_id" db:"provider_id"`
	ServiceID   uuid.UUID     `json:"service_id" db:"service_id"`
	BookingDate time.Time     `json:"booking_date" db:"booking_date"`
	BookingTime TimeOfDay     `json:"booking_time" db:"booking_time"`
	Address     string        `json:"address" db:"address"`
	Amount      float64       `json:"amount" db:"amount"`
	Status      BookingStatus `json:"status" db:"status"`
}

// StartsAt anchors the booking's clock time to its date.
func (b *Booking) StartsAt() time.Time {
	return b.BookingTime.On(b.BookingDate)
}

type CreateBookingRequest struct {
	ProviderID  uuid.UUID `json:"provider_id" binding:"required"`
	ServiceID   uuid.UUID `json:"service_id" binding:"required"`
	BookingDate string    `json:"booking_date" binding:"required"`
	BookingTime TimeOfDay `json:"booking_time" binding:"required"`
	Address     string    `json:"address" binding:"required"`
	Amount      float64   `json:"amount" binding:"required,gt=0"`
}

type BookingFilters struct {
	CustomerID uuid.UUID
	ProviderID uuid.UUID
	Status     BookingStatus
}

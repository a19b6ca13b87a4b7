package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusTransitions(t *testing.T) {
	legal := []struct{ from, to BookingStatus }{
		{BookingStatusPending, BookingStatusAccepted},
		{BookingStatusPending, BookingStatusRejected},
		{BookingStatusPending, BookingStatusCanceled},
		{BookingStatusAccepted, BookingStatusCompleted},
	}
	for _, tr := range legal {
		assert.True(t, tr.from.CanTransitionTo(tr.to), "%s -> %s should be legal", tr.from, tr.to)
	}

	illegal := []struct{ from, to BookingStatus }{
		{BookingStatusPending, BookingStatusCompleted},
		{BookingStatusAccepted, BookingStatusCanceled},
		{BookingStatusAccepted, BookingStatusRejected},
		{BookingStatusAccepted, BookingStatusPending},
		{BookingStatusRejected, BookingStatusAccepted},
		{BookingStatusCompleted, BookingStatusPending},
		{BookingStatusCanceled, BookingStatusAccepted},
		{BookingStatusPending, BookingStatusPending},
	}
	for _, tr := range illegal {
		assert.False(t, tr.from.CanTransitionTo(tr.to), "%s -> %s should be illegal", tr.from, tr.to)
	}
}

func TestBookingStatusOccupies(t *testing.T) {
	assert.True(t, BookingStatusPending.Occupies())
	assert.True(t, BookingStatusAccepted.Occupies())
	assert.True(t, BookingStatusCompleted.Occupies())
	assert.False(t, BookingStatusCanceled.Occupies())
	assert.False(t, BookingStatusRejected.Occupies())
}

func TestBookingStatusValid(t *testing.T) {
	assert.True(t, BookingStatusPending.Valid())
	assert.False(t, BookingStatus("unknown").Valid())
	assert.False(t, BookingStatus("").Valid())
}

func TestBookingStartsAt(t *testing.T) {
	b := &Booking{
		BookingDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		BookingTime: TimeOfDay(10*60 + 30),
	}
	assert.Equal(t, time.Date(2025, 3, 10, 10, 30, 0, 0, time.UTC), b.StartsAt())
}

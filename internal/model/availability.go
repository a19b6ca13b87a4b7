package model

import (
	"time"

	"github.com/google/uuid"
)

// ISO-8601 weekday numbering: 1 = Monday .. 7 = Sunday. This convention is
// shared by rule storage, slot generation and booking validation; mixing it
// with Go's Sunday-based time.Weekday silently breaks containment checks.
const (
	WeekdayMonday = 1
	WeekdaySunday = 7
)

// ISOWeekday converts t's weekday to ISO numbering.
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return WeekdaySunday
	}
	return wd
}

// WeeklyAvailability is a recurring weekly window for a provider. Multiple
// rules per weekday are allowed and may overlap; overlap is redundant
// coverage, not an error.
type WeeklyAvailability struct {
	Base
	ProviderID uuid.UUID `json:"provider_id" db:"provider_id"`
	Weekday    int       `json:"weekday" db:"weekday"`
	StartTime  TimeOfDay `json:"start_time" db:"start_time"`
	EndTime    TimeOfDay `json:"end_time" db:"end_time"`
	IsActive   bool      `json:"is_active" db:"is_active"`
}

// TimeOff is a one-off date-ranged block. With both clock bounds set it
// blocks only that window on every date in range; otherwise it blocks whole
// days. A rule with exactly one bound set counts as a full-day block.
type TimeOff struct {
	Base
	ProviderID uuid.UUID  `json:"provider_id" db:"provider_id"`
	StartDate  time.Time  `json:"start_date" db:"start_date"`
	EndDate    time.Time  `json:"end_date" db:"end_date"`
	StartTime  *TimeOfDay `json:"start_time,omitempty" db:"start_time"`
	EndTime    *TimeOfDay `json:"end_time,omitempty" db:"end_time"`
	Reason     *string    `json:"reason,omitempty" db:"reason"`
}

// FullDay reports whether the rule blocks entire days.
func (t *TimeOff) FullDay() bool {
	return t.StartTime == nil || t.EndTime == nil
}

// BlockOn returns the blocked interval anchored to a single date in range.
func (t *TimeOff) BlockOn(date time.Time) (start, end time.Time) {
	if t.FullDay() {
		y, m, d := date.Date()
		dayStart := time.Date(y, m, d, 0, 0, 0, 0, date.Location())
		return dayStart, dayStart.AddDate(0, 0, 1)
	}
	return t.StartTime.On(date), t.EndTime.On(date)
}

type CreateWeeklyAvailabilityRequest struct {
	Weekday   int       `json:"weekday" binding:"required,min=1,max=7"`
	StartTime TimeOfDay `json:"start_time" binding:"required"`
	EndTime   TimeOfDay `json:"end_time" binding:"required"`
	IsActive  *bool     `json:"is_active"`
}

type CreateTimeOffRequest struct {
	StartDate string     `json:"start_date" binding:"required"`
	EndDate   string     `json:"end_date" binding:"required"`
	StartTime *TimeOfDay `json:"start_time"`
	EndTime   *TimeOfDay `json:"end_time"`
	Reason    *string    `json:"reason"`
}

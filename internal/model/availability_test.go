package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestISOWeekday(t *testing.T) {
	// 2025-03-10 is a Monday, 2025-03-16 a Sunday.
	assert.Equal(t, WeekdayMonday, ISOWeekday(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 3, ISOWeekday(time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 6, ISOWeekday(time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, WeekdaySunday, ISOWeekday(time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC)))
}

func TestTimeOffFullDay(t *testing.T) {
	st := TimeOfDay(10 * 60)
	en := TimeOfDay(12 * 60)

	assert.True(t, (&TimeOff{}).FullDay())
	assert.False(t, (&TimeOff{StartTime: &st, EndTime: &en}).FullDay())
	// One bound without the other falls back to a full-day block.
	assert.True(t, (&TimeOff{StartTime: &st}).FullDay())
	assert.True(t, (&TimeOff{EndTime: &en}).FullDay())
}

func TestTimeOffBlockOn(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	full := &TimeOff{StartDate: date, EndDate: date}
	start, end := full.BlockOn(date)
	assert.Equal(t, date, start)
	assert.Equal(t, date.AddDate(0, 0, 1), end)

	st := TimeOfDay(10 * 60)
	en := TimeOfDay(12 * 60)
	windowed := &TimeOff{StartDate: date, EndDate: date, StartTime: &st, EndTime: &en}
	start, end = windowed.BlockOn(date)
	assert.Equal(t, time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC), end)
}

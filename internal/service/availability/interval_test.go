package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func interval(t *testing.T, startHour, startMin, endHour, endMin int) Interval {
	t.Helper()
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	return Interval{
		Start: day.Add(time.Duration(startHour)*time.Hour + time.Duration(startMin)*time.Minute),
		End:   day.Add(time.Duration(endHour)*time.Hour + time.Duration(endMin)*time.Minute),
	}
}

func TestIntervalOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"disjoint", interval(t, 9, 0, 10, 0), interval(t, 11, 0, 12, 0), false},
		{"touching endpoints do not overlap", interval(t, 9, 0, 10, 0), interval(t, 10, 0, 11, 0), false},
		{"touching reversed", interval(t, 10, 0, 11, 0), interval(t, 9, 0, 10, 0), false},
		{"partial overlap", interval(t, 9, 0, 10, 30), interval(t, 10, 0, 11, 0), true},
		{"identical", interval(t, 9, 0, 10, 0), interval(t, 9, 0, 10, 0), true},
		{"contained", interval(t, 9, 0, 12, 0), interval(t, 10, 0, 11, 0), true},
		{"one minute overlap", interval(t, 9, 0, 10, 1), interval(t, 10, 0, 11, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			// Overlap is symmetric.
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestIntervalContains(t *testing.T) {
	window := interval(t, 9, 0, 12, 0)

	assert.True(t, window.Contains(interval(t, 9, 0, 12, 0)))
	assert.True(t, window.Contains(interval(t, 10, 0, 11, 0)))
	assert.True(t, window.Contains(interval(t, 11, 0, 12, 0)))
	assert.False(t, window.Contains(interval(t, 8, 30, 9, 30)))
	assert.False(t, window.Contains(interval(t, 11, 30, 12, 30)))
	assert.False(t, window.Contains(interval(t, 8, 0, 13, 0)))
}

func TestOverlapsAny(t *testing.T) {
	busy := []Interval{interval(t, 10, 0, 11, 0), interval(t, 14, 0, 15, 0)}

	assert.True(t, overlapsAny(interval(t, 10, 30, 11, 30), busy))
	assert.False(t, overlapsAny(interval(t, 11, 0, 12, 0), busy))
	assert.False(t, overlapsAny(interval(t, 9, 0, 10, 0), busy))
	assert.False(t, overlapsAny(interval(t, 9, 0, 10, 0), nil))
}

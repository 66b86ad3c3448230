package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, minute int) time.Time {
	return time.Date(2024, time.March, 4, hour, minute, 0, 0, time.UTC)
}

func span(startHour, startMinute, endHour, endMinute int) *Appointment {
	return &Appointment{StartsAt: at(startHour, startMinute), FinishesAt: at(endHour, endMinute)}
}

func TestHasValidInterval(t *testing.T) {
	assert.True(t, span(10, 0, 11, 0).HasValidInterval())
	assert.False(t, span(9, 0, 9, 0).HasValidInterval())
	assert.False(t, span(12, 0, 11, 0).HasValidInterval())
}

func TestOverlaps(t *testing.T) {
	existing := span(10, 0, 11, 0)

	tests := []struct {
		name      string
		candidate *Appointment
		want      bool
	}{
		{"adjacent after", span(11, 0, 12, 0), false},
		{"adjacent before", span(9, 0, 10, 0), false},
		{"entirely before", span(7, 0, 8, 0), false},
		{"entirely after", span(13, 0, 14, 0), false},
		{"contained", span(10, 30, 10, 45), true},
		{"containing", span(9, 0, 12, 0), true},
		{"identical", span(10, 0, 11, 0), true},
		{"same start", span(10, 0, 10, 15), true},
		{"same finish", span(10, 45, 11, 0), true},
		{"straddles start", span(9, 30, 10, 30), true},
		{"straddles finish", span(10, 59, 11, 30), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, existing.Overlaps(tt.candidate))
			assert.Equal(t, tt.want, tt.candidate.Overlaps(existing), "overlap must be symmetric")
		})
	}
}

func TestFirstOverlap(t *testing.T) {
	stored := []Appointment{
		{ID: 1, StartsAt: at(8, 0), FinishesAt: at(9, 0)},
		{ID: 2, StartsAt: at(10, 0), FinishesAt: at(11, 0)},
	}

	assert.Nil(t, span(9, 0, 10, 0).FirstOverlap(stored))
	assert.Nil(t, span(9, 0, 10, 0).FirstOverlap(nil))

	hit := span(10, 30, 10, 45).FirstOverlap(stored)
	if assert.NotNil(t, hit) {
		assert.Equal(t, int64(2), hit.ID)
	}
}

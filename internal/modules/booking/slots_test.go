package booking

import (
	"testing"
	"time"

	"inkbook/internal/domain"

	"github.com/stretchr/testify/assert"
)

// 2024-05-03 is a Friday.
var friday = time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)

func TestDefaultSlots(t *testing.T) {
	slots := DefaultSlots()
	assert.Len(t, slots, 17)
	assert.Equal(t, "09:00", slots[0])
	assert.Equal(t, "09:30", slots[1])
	assert.Equal(t, "17:00", slots[16])
}

func TestDeriveSlots_FallsBackToDefault(t *testing.T) {
	tests := []struct {
		name string
		av   domain.Availability
	}{
		{"nil availability", nil},
		{"day missing", domain.Availability{"monday": {{Start: "10:00", End: "12:00"}}}},
		{"day empty", domain.Availability{"friday": {}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, DefaultSlots(), DeriveSlots(tt.av, friday))
		})
	}
}

func TestDeriveSlots_Ranges(t *testing.T) {
	tests := []struct {
		name   string
		ranges []domain.TimeRange
		want   []string
	}{
		{
			name:   "whole hours",
			ranges: []domain.TimeRange{{Start: "10:00", End: "14:00"}},
			want:   []string{"10:00", "11:00", "12:00", "13:00"},
		},
		{
			name:   "half-hour start rounds up",
			ranges: []domain.TimeRange{{Start: "09:30", End: "12:00"}},
			want:   []string{"10:00", "11:00"},
		},
		{
			name:   "end minutes are truncated",
			ranges: []domain.TimeRange{{Start: "10:00", End: "12:45"}},
			want:   []string{"10:00", "11:00"},
		},
		{
			name: "ranges concatenate in order",
			ranges: []domain.TimeRange{
				{Start: "09:00", End: "11:00"},
				{Start: "15:00", End: "17:00"},
			},
			want: []string{"09:00", "10:00", "15:00", "16:00"},
		},
		{
			name:   "sub-hour range yields nothing",
			ranges: []domain.TimeRange{{Start: "10:15", End: "10:50"}},
			want:   []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			av := domain.Availability{"friday": tt.ranges}
			assert.Equal(t, tt.want, DeriveSlots(av, friday))
		})
	}
}

func TestDeriveSlots_UsesWeekdayOfDate(t *testing.T) {
	av := domain.Availability{"saturday": {{Start: "12:00", End: "13:00"}}}
	assert.Equal(t, []string{"12:00"}, DeriveSlots(av, friday.AddDate(0, 0, 1)))
	assert.Len(t, DeriveSlots(av, friday), 17)
}

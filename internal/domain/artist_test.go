package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailability_Validate(t *testing.T) {
	tests := []struct {
		name    string
		av      Availability
		wantErr bool
	}{
		{"nil", nil, false},
		{"single range", Availability{"friday": {{"10:00", "14:00"}}}, false},
		{"two disjoint", Availability{"monday": {{"09:00", "12:00"}, {"13:00", "17:00"}}}, false},
		{"touching", Availability{"monday": {{"09:00", "12:00"}, {"12:00", "15:00"}}}, false},
		{"unknown day", Availability{"funday": {{"09:00", "12:00"}}}, true},
		{"bad clock", Availability{"monday": {{"9am", "12:00"}}}, true},
		{"start after end", Availability{"monday": {{"14:00", "12:00"}}}, true},
		{"empty range", Availability{"monday": {{"12:00", "12:00"}}}, true},
		{"overlap", Availability{"monday": {{"09:00", "12:00"}, {"11:00", "13:00"}}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.av.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAvailability)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestAvailability_NormalizeSortsRanges(t *testing.T) {
	av := Availability{"tuesday": {{"13:00", "15:00"}, {"09:00", "11:00"}}}
	require.Error(t, av.Validate())

	av.Normalize()
	require.NoError(t, av.Validate())
	assert.Equal(t, "09:00", av["tuesday"][0].Start)
}

func TestWeekdayName(t *testing.T) {
	assert.Equal(t, "friday", WeekdayName(time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)))
}

package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

var ErrInvalidAvailability = errors.New("invalid availability")

// ArtistProfile is the public part of an artist account.
type ArtistProfile struct {
	Bio          string       `json:"bio"`
	Location     string       `json:"location"`
	Specialties  []string     `json:"specialties"`
	Portfolio    []string     `json:"portfolio"`
	HourlyRate   float64      `json:"hourly_rate"`
	Rating       float64      `json:"rating"`
	TotalReviews int          `json:"total_reviews"`
	Approved     bool         `json:"approved"`
	Availability Availability `json:"availability,omitempty"`
}

// TimeRange is a "HH:MM"-"HH:MM" window within one day.
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Availability maps lowercase weekday names to that day's ranges.
// A nil map means the artist never configured a schedule.
type Availability map[string][]TimeRange

var weekdays = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
}

// WeekdayName returns the availability key for t.
func WeekdayName(t time.Time) string {
	return strings.ToLower(t.Weekday().String())
}

// ParseClock parses "HH:MM" into minutes since midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Validate checks the write-time invariants: known weekday keys, well-formed
// clocks, start < end, and ranges sorted by start without overlap.
func (a Availability) Validate() error {
	for day, ranges := range a {
		if !weekdays[day] {
			return fmt.Errorf("%w: unknown day %q", ErrInvalidAvailability, day)
		}
		prevEnd := -1
		for i, r := range ranges {
			start, err := ParseClock(r.Start)
			if err != nil {
				return fmt.Errorf("%w: %s[%d] start %q", ErrInvalidAvailability, day, i, r.Start)
			}
			end, err := ParseClock(r.End)
			if err != nil {
				return fmt.Errorf("%w: %s[%d] end %q", ErrInvalidAvailability, day, i, r.End)
			}
			if start >= end {
				return fmt.Errorf("%w: %s[%d] start must be before end", ErrInvalidAvailability, day, i)
			}
			if start < prevEnd {
				return fmt.Errorf("%w: %s[%d] overlaps or is out of order", ErrInvalidAvailability, day, i)
			}
			prevEnd = end
		}
	}
	return nil
}

// Normalize sorts each day's ranges by start time. Callers run it before Validate
// so that unordered but otherwise disjoint input is accepted.
func (a Availability) Normalize() {
	for day, ranges := range a {
		sort.SliceStable(ranges, func(i, j int) bool {
			si, _ := ParseClock(ranges[i].Start)
			sj, _ := ParseClock(ranges[j].Start)
			return si < sj
		})
		a[day] = ranges
	}
}

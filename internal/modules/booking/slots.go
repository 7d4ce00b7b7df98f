package booking

import (
	"fmt"
	"time"

	"inkbook/internal/domain"
)

// DefaultSlots is offered when the artist has no ranges for the day:
// every half hour from 09:00 through 17:00.
func DefaultSlots() []string {
	out := make([]string, 0, 17)
	for m := 9 * 60; m <= 17*60; m += 30 {
		out = append(out, fmt.Sprintf("%02d:%02d", m/60, m%60))
	}
	return out
}

// DeriveSlots lists the bookable start times for date. Each configured range
// yields one slot per whole hour, from the first full hour at or after its start
// up to but excluding the hour of its end. Ranges shorter than an hour that do
// not contain a full hour yield nothing. Existing bookings are not subtracted.
func DeriveSlots(av domain.Availability, date time.Time) []string {
	ranges := av[domain.WeekdayName(date)]
	if len(ranges) == 0 {
		return DefaultSlots()
	}

	out := []string{}
	for _, r := range ranges {
		start, err := domain.ParseClock(r.Start)
		if err != nil {
			continue
		}
		end, err := domain.ParseClock(r.End)
		if err != nil {
			continue
		}

		first := start / 60
		if start%60 != 0 {
			first++
		}
		for h := first; h < end/60; h++ {
			out = append(out, fmt.Sprintf("%02d:00", h))
		}
	}
	return out
}

func containsSlot(slots []string, slot string) bool {
	for _, s := range slots {
		if s == slot {
			return true
		}
	}
	return false
}

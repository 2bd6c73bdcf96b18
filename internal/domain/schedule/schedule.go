package schedule

import (
	"math"
	"time"
)

// Frequency is the day-of-week policy of a schedule.
type Frequency string

const (
	// FrequencyDaily fires every day.
	FrequencyDaily Frequency = "DAILY"
	// FrequencyAlternate fires every other day, anchored to the schedule's
	// creation date.
	FrequencyAlternate Frequency = "ALTERNATE"
	// FrequencyCustom fires only on an explicit set of weekdays.
	FrequencyCustom Frequency = "CUSTOM"
)

// Weekdays holds the short labels used for CUSTOM day sets and for bucketing
// adherence counts, in fixed Mon..Sun order.
var Weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Schedule is the recurring time-of-day pattern for one medicine. Times are
// kept canonical: zero-padded "HH:MM", unique, sorted ascending. Days is
// non-empty only when Frequency is CUSTOM.
type Schedule struct {
	ID         int64
	UserID     int64
	MedicineID int64
	Times      []string
	Frequency  Frequency
	Days       []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// FiresOn reports whether the schedule's day policy passes for the given
// weekday label and calendar date. The date matters only for ALTERNATE, which
// passes on even whole-day offsets from the schedule's creation date.
func (s *Schedule) FiresOn(weekday string, date time.Time) bool {
	switch s.Frequency {
	case FrequencyCustom:
		for _, d := range s.Days {
			if d == weekday {
				return true
			}
		}
		return false
	case FrequencyAlternate:
		// The anchor is the creation instant's calendar date in the zone the
		// cadence is evaluated in, so stores returning CreatedAt in UTC and
		// stores returning it in local time agree.
		c := s.CreatedAt.In(date.Location())
		anchor := time.Date(c.Year(), c.Month(), c.Day(), 0, 0, 0, 0, date.Location())
		day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
		// Round so a DST-shortened or -lengthened day still counts as one day.
		diff := int(math.Round(day.Sub(anchor).Hours() / 24))
		if diff < 0 {
			diff = -diff
		}
		return diff%2 == 0
	default: // DAILY, and anything unknown behaves as daily
		return true
	}
}

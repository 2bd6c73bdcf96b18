package app

import "time"

// Clock abstracts "now" so the tick matcher and the read views can be tested
// against a fixed instant instead of waiting on wall-clock minutes.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant. Test helper.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }

// ClockTime renders t in loc as the canonical "HH:MM" value schedules are
// matched against.
func ClockTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("15:04")
}

// WeekdayLabel renders t in loc as the short weekday label ("Mon".."Sun")
// used by CUSTOM day sets.
func WeekdayLabel(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("Mon")
}

package intake

import "time"

// Status is the recorded outcome of one scheduled dose slot.
type Status string

const (
	StatusTaken  Status = "TAKEN"
	StatusMissed Status = "MISSED"
)

// Valid reports whether s is one of the two allowed outcomes.
func (s Status) Valid() bool {
	return s == StatusTaken || s == StatusMissed
}

// Log is one immutable entry of the intake ledger: the outcome of the dose
// slot (UserID, MedicineID, Date, Time). At most one log exists per slot; the
// ledger never overwrites an outcome.
type Log struct {
	ID         int64
	UserID     int64
	MedicineID int64
	Date       time.Time // calendar date of the slot, normalized to midnight UTC
	Time       string    // scheduled clock time, "HH:MM"
	Status     Status
	CreatedAt  time.Time
}

// DateKey normalizes t to the midnight-UTC representation used for slot dates.
func DateKey(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

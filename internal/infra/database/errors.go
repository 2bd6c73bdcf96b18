package database

import "fmt"

// Sentinel errors shared by the Postgres and in-memory repository
// implementations. Application services match on these to classify failures.
var (
	ErrMedicineNotFound = fmt.Errorf("medicine not found")
	ErrScheduleNotFound = fmt.Errorf("schedule not found")
	ErrUserNotFound     = fmt.Errorf("user not found")

	// ErrDuplicateIntake reports a violation of the ledger's uniqueness
	// constraint on (user_id, medicine_id, intake_date, intake_time).
	ErrDuplicateIntake = fmt.Errorf("intake already recorded for this slot")

	// ErrDuplicateSchedule reports a violation of the one-schedule-per-medicine
	// constraint.
	ErrDuplicateSchedule = fmt.Errorf("medicine already has a schedule")
)

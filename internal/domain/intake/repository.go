package intake

import (
	"context"
	"time"
)

// Repository defines the operations for the intake ledger.
//
// Create must enforce the (UserID, MedicineID, Date, Time) uniqueness
// atomically at the storage layer and report a violation as a duplicate-slot
// error; callers may pre-check, but the pre-check is advisory only.
type Repository interface {
	Create(ctx context.Context, l *Log) error
	// ListByDate returns the user's logs whose Date equals the given calendar
	// date (compared after DateKey normalization).
	ListByDate(ctx context.Context, userID int64, date time.Time) ([]*Log, error)
	// ListByRange returns the user's logs with from <= Date <= to, ascending.
	ListByRange(ctx context.Context, userID int64, from, to time.Time) ([]*Log, error)
	// ListByUser returns the user's full history, newest first.
	ListByUser(ctx context.Context, userID int64) ([]*Log, error)
	DeleteByMedicine(ctx context.Context, userID, medicineID int64) error
}

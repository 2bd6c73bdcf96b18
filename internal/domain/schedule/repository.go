package schedule

import "context"

// Repository defines the operations for persisting and retrieving Schedule entities.
type Repository interface {
	Create(ctx context.Context, s *Schedule) error
	GetByID(ctx context.Context, userID, id int64) (*Schedule, error)
	// GetByMedicine returns the (at most one) schedule attached to a medicine.
	GetByMedicine(ctx context.Context, userID, medicineID int64) (*Schedule, error)
	ListByUser(ctx context.Context, userID int64) ([]*Schedule, error)
	// ListByTime returns every schedule, across all users, whose Times set
	// contains the exact "HH:MM" value. This is the tick matcher's query.
	ListByTime(ctx context.Context, hhmm string) ([]*Schedule, error)
	Update(ctx context.Context, s *Schedule) error
	Delete(ctx context.Context, userID, id int64) error
	DeleteByMedicine(ctx context.Context, userID, medicineID int64) error
}

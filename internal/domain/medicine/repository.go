package medicine

import "context"

// Repository defines the operations for persisting and retrieving Medicine entities.
// Every read is scoped to the owning user; a medicine owned by someone else is
// indistinguishable from a missing one.
type Repository interface {
	Create(ctx context.Context, m *Medicine) error
	GetByID(ctx context.Context, userID, id int64) (*Medicine, error)
	ListByUser(ctx context.Context, userID int64) ([]*Medicine, error)
	Update(ctx context.Context, m *Medicine) error
	// Delete removes the medicine row only. Cascading to schedules and intake
	// logs is the MedicineService's job so the order of deletion is explicit.
	Delete(ctx context.Context, userID, id int64) error
}

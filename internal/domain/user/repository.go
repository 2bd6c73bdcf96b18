package user

import "context"

// Repository defines read access to the user projection.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*User, error)
}

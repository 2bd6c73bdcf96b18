package medicine

import (
	"database/sql"
	"time"
)

// Type categorizes the form a medicine is taken in.
type Type string

const (
	TypeTablet    Type = "TABLET"
	TypeSyrup     Type = "SYRUP"
	TypeInjection Type = "INJECTION"
)

// Medicine represents one medicine owned by a user, with its active date range.
type Medicine struct {
	ID              int64
	UserID          int64
	Name            string
	Type            Type
	Dosage          string // e.g. "500mg"
	QuantityPerDose int    // e.g. 1 tablet
	Instructions    sql.NullString
	StartDate       time.Time
	EndDate         sql.NullTime
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

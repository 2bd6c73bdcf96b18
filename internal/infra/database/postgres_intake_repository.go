// internal/infra/database/postgres_intake_repository.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"medicine_reminder/internal/domain/intake"
)

type PostgresIntakeRepository struct {
	db *sql.DB
}

func NewPostgresIntakeRepository(db *sql.DB) *PostgresIntakeRepository {
	return &PostgresIntakeRepository{db: db}
}

// Create inserts one ledger entry. The intake_slot_unique index on
// (user_id, medicine_id, intake_date, intake_time) is what actually enforces
// at-most-one outcome per slot; concurrent writers race here, not in the
// service's advisory checks.
func (r *PostgresIntakeRepository) Create(ctx context.Context, l *intake.Log) error {
	query := `INSERT INTO intake_logs (user_id, medicine_id, intake_date, intake_time, status)
               VALUES ($1, $2, $3, $4, $5)
               RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query,
		l.UserID, l.MedicineID, l.Date, l.Time, l.Status,
	).Scan(&l.ID, &l.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "intake_slot_unique") { // Check for unique constraint violation
			return ErrDuplicateIntake
		}
		return fmt.Errorf("error creating intake log: %w", err)
	}
	return nil
}

func (r *PostgresIntakeRepository) ListByDate(ctx context.Context, userID int64, date time.Time) ([]*intake.Log, error) {
	query := selectIntake + ` WHERE user_id = $1 AND intake_date = $2 ORDER BY intake_time ASC`
	rows, err := r.db.QueryContext(ctx, query, userID, intake.DateKey(date))
	if err != nil {
		return nil, fmt.Errorf("error listing intake logs by date: %w", err)
	}
	defer rows.Close()
	return scanIntakeRows(rows)
}

func (r *PostgresIntakeRepository) ListByRange(ctx context.Context, userID int64, from, to time.Time) ([]*intake.Log, error) {
	query := selectIntake + ` WHERE user_id = $1 AND intake_date BETWEEN $2 AND $3 ORDER BY intake_date ASC, intake_time ASC`
	rows, err := r.db.QueryContext(ctx, query, userID, intake.DateKey(from), intake.DateKey(to))
	if err != nil {
		return nil, fmt.Errorf("error listing intake logs by range: %w", err)
	}
	defer rows.Close()
	return scanIntakeRows(rows)
}

func (r *PostgresIntakeRepository) ListByUser(ctx context.Context, userID int64) ([]*intake.Log, error) {
	query := selectIntake + ` WHERE user_id = $1 ORDER BY intake_date DESC, intake_time DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing intake history: %w", err)
	}
	defer rows.Close()
	return scanIntakeRows(rows)
}

func (r *PostgresIntakeRepository) DeleteByMedicine(ctx context.Context, userID, medicineID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM intake_logs WHERE medicine_id = $1 AND user_id = $2`, medicineID, userID)
	if err != nil {
		return fmt.Errorf("error deleting intake logs for medicine: %w", err)
	}
	return nil
}

const selectIntake = `SELECT id, user_id, medicine_id, intake_date, intake_time, status, created_at FROM intake_logs`

func scanIntakeRows(rows *sql.Rows) ([]*intake.Log, error) {
	var out []*intake.Log
	for rows.Next() {
		l := intake.Log{}
		if err := rows.Scan(&l.ID, &l.UserID, &l.MedicineID, &l.Date, &l.Time, &l.Status, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning intake log row: %w", err)
		}
		l.Date = intake.DateKey(l.Date)
		out = append(out, &l)
	}
	return out, rows.Err()
}

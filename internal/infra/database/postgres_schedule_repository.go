// internal/infra/database/postgres_schedule_repository.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"medicine_reminder/internal/domain/schedule"

	"github.com/lib/pq" // For pq.Array over times/days
)

type PostgresScheduleRepository struct {
	db *sql.DB
}

func NewPostgresScheduleRepository(db *sql.DB) *PostgresScheduleRepository {
	return &PostgresScheduleRepository{db: db}
}

func (r *PostgresScheduleRepository) Create(ctx context.Context, s *schedule.Schedule) error {
	query := `INSERT INTO schedules (user_id, medicine_id, times, frequency, days)
               VALUES ($1, $2, $3, $4, $5)
               RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		s.UserID, s.MedicineID, pq.Array(s.Times), s.Frequency, pq.Array(s.Days),
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "schedule_medicine_unique") {
			return ErrDuplicateSchedule
		}
		return fmt.Errorf("error creating schedule: %w", err)
	}
	return nil
}

func (r *PostgresScheduleRepository) GetByID(ctx context.Context, userID, id int64) (*schedule.Schedule, error) {
	query := selectSchedule + ` WHERE id = $1 AND user_id = $2`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id, userID))
}

func (r *PostgresScheduleRepository) GetByMedicine(ctx context.Context, userID, medicineID int64) (*schedule.Schedule, error) {
	query := selectSchedule + ` WHERE medicine_id = $1 AND user_id = $2 ORDER BY created_at DESC LIMIT 1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, medicineID, userID))
}

func (r *PostgresScheduleRepository) ListByUser(ctx context.Context, userID int64) ([]*schedule.Schedule, error) {
	query := selectSchedule + ` WHERE user_id = $1 ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing schedules: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// ListByTime is the tick matcher's query: every schedule, any user, whose
// times array contains the exact "HH:MM" value.
func (r *PostgresScheduleRepository) ListByTime(ctx context.Context, hhmm string) ([]*schedule.Schedule, error) {
	query := selectSchedule + ` WHERE $1 = ANY(times)`
	rows, err := r.db.QueryContext(ctx, query, hhmm)
	if err != nil {
		return nil, fmt.Errorf("error listing schedules by time: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

func (r *PostgresScheduleRepository) Update(ctx context.Context, s *schedule.Schedule) error {
	query := `UPDATE schedules
               SET times = $1, frequency = $2, days = $3, updated_at = NOW()
               WHERE id = $4 AND user_id = $5
               RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query,
		pq.Array(s.Times), s.Frequency, pq.Array(s.Days), s.ID, s.UserID,
	).Scan(&s.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrScheduleNotFound
		}
		return fmt.Errorf("error updating schedule: %w", err)
	}
	return nil
}

func (r *PostgresScheduleRepository) Delete(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM schedules WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("error deleting schedule: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking deleted schedule rows: %w", err)
	}
	if n == 0 {
		return ErrScheduleNotFound
	}
	return nil
}

func (r *PostgresScheduleRepository) DeleteByMedicine(ctx context.Context, userID, medicineID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM schedules WHERE medicine_id = $1 AND user_id = $2`, medicineID, userID)
	if err != nil {
		return fmt.Errorf("error deleting schedules for medicine: %w", err)
	}
	return nil
}

const selectSchedule = `SELECT id, user_id, medicine_id, times, frequency, days, created_at, updated_at FROM schedules`

func (r *PostgresScheduleRepository) scanOne(row *sql.Row) (*schedule.Schedule, error) {
	s := schedule.Schedule{}
	err := row.Scan(&s.ID, &s.UserID, &s.MedicineID, pq.Array(&s.Times), &s.Frequency, pq.Array(&s.Days), &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrScheduleNotFound
		}
		return nil, fmt.Errorf("error scanning schedule: %w", err)
	}
	return &s, nil
}

func (r *PostgresScheduleRepository) scanAll(rows *sql.Rows) ([]*schedule.Schedule, error) {
	var out []*schedule.Schedule
	for rows.Next() {
		s := schedule.Schedule{}
		if err := rows.Scan(&s.ID, &s.UserID, &s.MedicineID, pq.Array(&s.Times), &s.Frequency, pq.Array(&s.Days), &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning schedule row: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// internal/infra/database/postgres_medicine_repository.go
package database

import (
	"context"
	"database/sql"
	"fmt"

	"medicine_reminder/internal/domain/medicine"
)

type PostgresMedicineRepository struct {
	db *sql.DB
}

func NewPostgresMedicineRepository(db *sql.DB) *PostgresMedicineRepository {
	return &PostgresMedicineRepository{db: db}
}

func (r *PostgresMedicineRepository) Create(ctx context.Context, m *medicine.Medicine) error {
	query := `INSERT INTO medicines (user_id, name, type, dosage, quantity_per_dose, instructions, start_date, end_date, is_active)
               VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
               RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		m.UserID, m.Name, m.Type, m.Dosage, m.QuantityPerDose,
		m.Instructions, m.StartDate, m.EndDate, m.IsActive,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating medicine: %w", err)
	}
	return nil
}

func (r *PostgresMedicineRepository) GetByID(ctx context.Context, userID, id int64) (*medicine.Medicine, error) {
	query := `SELECT id, user_id, name, type, dosage, quantity_per_dose, instructions, start_date, end_date, is_active, created_at, updated_at
               FROM medicines WHERE id = $1 AND user_id = $2`
	m := medicine.Medicine{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&m.ID, &m.UserID, &m.Name, &m.Type, &m.Dosage, &m.QuantityPerDose,
		&m.Instructions, &m.StartDate, &m.EndDate, &m.IsActive, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrMedicineNotFound
		}
		return nil, fmt.Errorf("error getting medicine by ID: %w", err)
	}
	return &m, nil
}

func (r *PostgresMedicineRepository) ListByUser(ctx context.Context, userID int64) ([]*medicine.Medicine, error) {
	query := `SELECT id, user_id, name, type, dosage, quantity_per_dose, instructions, start_date, end_date, is_active, created_at, updated_at
               FROM medicines WHERE user_id = $1 ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing medicines: %w", err)
	}
	defer rows.Close()

	var out []*medicine.Medicine
	for rows.Next() {
		m := medicine.Medicine{}
		if err := rows.Scan(
			&m.ID, &m.UserID, &m.Name, &m.Type, &m.Dosage, &m.QuantityPerDose,
			&m.Instructions, &m.StartDate, &m.EndDate, &m.IsActive, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning medicine row: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (r *PostgresMedicineRepository) Update(ctx context.Context, m *medicine.Medicine) error {
	query := `UPDATE medicines
               SET name = $1, type = $2, dosage = $3, quantity_per_dose = $4, instructions = $5,
                   start_date = $6, end_date = $7, is_active = $8, updated_at = NOW()
               WHERE id = $9 AND user_id = $10
               RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query,
		m.Name, m.Type, m.Dosage, m.QuantityPerDose, m.Instructions,
		m.StartDate, m.EndDate, m.IsActive, m.ID, m.UserID,
	).Scan(&m.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrMedicineNotFound
		}
		return fmt.Errorf("error updating medicine: %w", err)
	}
	return nil
}

func (r *PostgresMedicineRepository) Delete(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM medicines WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("error deleting medicine: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking deleted medicine rows: %w", err)
	}
	if n == 0 {
		return ErrMedicineNotFound
	}
	return nil
}

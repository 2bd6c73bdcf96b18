// internal/infra/database/postgres_user_repository.go
package database

import (
	"context"
	"database/sql"
	"fmt"

	"medicine_reminder/internal/domain/user"
)

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	query := `SELECT id, name, email, guardian_email, notify_guardian, telegram_chat_id, timezone, is_active, created_at, updated_at
               FROM users WHERE id = $1`
	u := user.User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&u.ID, &u.Name, &u.Email, &u.GuardianEmail, &u.NotifyGuardian,
		&u.TelegramChatID, &u.Timezone, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("error getting user by ID: %w", err)
	}
	return &u, nil
}

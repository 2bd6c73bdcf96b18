package user

import (
	"database/sql"
	"time"
)

// User is the notification-relevant projection of an account. Registration,
// authentication and profile editing happen outside this service; we only need
// enough to address reminders and guardian alerts.
type User struct {
	ID             int64
	Name           string
	Email          string
	GuardianEmail  sql.NullString
	NotifyGuardian bool
	TelegramChatID sql.NullInt64 // set when the user has linked a Telegram chat
	Timezone       string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a read model over the platform's users table. Account management
// lives in the auth subsystem; this service only resolves recipients, sender
// display info, and the notification preference map.
type User struct {
	ID          uuid.UUID     `json:"id" db:"id"`
	FullName    string        `json:"full_name" db:"full_name"`
	Email       string        `json:"email" db:"email"`
	AvatarURL   *string       `json:"avatar_url,omitempty" db:"avatar_url"`
	Preferences PreferenceMap `json:"notification_preferences" db:"notification_preferences"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
}

func (u *User) AsSender() *NotificationSender {
	if u == nil {
		return nil
	}
	return &NotificationSender{
		ID:        u.ID,
		FullName:  u.FullName,
		AvatarURL: u.AvatarURL,
	}
}

package model

import "time"

// User stores Telegram user metadata and planning preferences.
type User struct {
	ID         uint  `gorm:"primaryKey"`
	TelegramID int64 `gorm:"uniqueIndex"`
	FirstName  string
	Username   string
	// PlanHours overrides the configured planning capacity when positive.
	PlanHours int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Capacity returns the user's planning budget in hours, or fallback when unset.
func (u User) Capacity(fallback int) int {
	if u.PlanHours > 0 {
		return u.PlanHours
	}
	return fallback
}

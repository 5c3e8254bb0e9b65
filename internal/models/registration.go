package models

import "time"

// Registration records a user's sign-up for a hackathon. At most one per pair.
type Registration struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;uniqueIndex:idx_registrations_user_hackathon;index" json:"user_id"`
	HackathonID  uint      `gorm:"not null;uniqueIndex:idx_registrations_user_hackathon" json:"hackathon_id"`
	RegisteredAt time.Time `gorm:"not null" json:"registered_at"`
}

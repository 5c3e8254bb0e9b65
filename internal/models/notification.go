package models

import "time"

const (
	NotificationTeamInvite       = "team_invite"
	NotificationTeamJoinRequest  = "team_join_request"
	NotificationDeadlineReminder = "deadline_reminder"
)

// Notification is a persisted, per-user feed entry. RelatedID points at
// whichever entity the type implies (team for joins, hackathon for reminders).
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_notifications_user_created,priority:1" json:"user_id"`
	Type      string    `gorm:"type:varchar(32);not null" json:"type"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	RelatedID *uint     `json:"related_id,omitempty"`
	Read      bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt time.Time `gorm:"index:idx_notifications_user_created,priority:2" json:"created_at"`
}

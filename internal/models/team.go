package models

import (
	"time"

	"gorm.io/datatypes"
)

// DefaultMaxMembers applies when a team is created without a size cap.
const DefaultMaxMembers = 5

// Team belongs to exactly one hackathon and is joined with its invite code.
type Team struct {
	ID             uint                        `gorm:"primaryKey" json:"id"`
	Name           string                      `gorm:"not null" json:"name"`
	Description    string                      `gorm:"type:text;not null" json:"description"`
	HackathonID    uint                        `gorm:"not null;index" json:"hackathon_id"`
	CreatorID      uint                        `gorm:"not null;index" json:"creator_id"`
	RequiredSkills datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"required_skills"`
	InviteCode     string                      `gorm:"type:varchar(16);uniqueIndex;not null" json:"invite_code"`
	MaxMembers     int                         `gorm:"not null;default:5" json:"max_members"`
	CreatedAt      time.Time                   `json:"created_at"`
}

const (
	MemberStatusInvited  = "invited"
	MemberStatusAccepted = "accepted"
	MemberStatusDeclined = "declined"
)

// TeamMember links a user to a team. JoinedAt is only set for accepted rows.
type TeamMember struct {
	ID       uint       `gorm:"primaryKey" json:"id"`
	TeamID   uint       `gorm:"not null;uniqueIndex:idx_team_members_team_user;index" json:"team_id"`
	UserID   uint       `gorm:"not null;uniqueIndex:idx_team_members_team_user;index" json:"user_id"`
	Status   string     `gorm:"type:varchar(16);not null" json:"status"`
	JoinedAt *time.Time `json:"joined_at,omitempty"`
}

// Accepted reports whether the membership is active.
func (m *TeamMember) Accepted() bool {
	return m.Status == MemberStatusAccepted
}

package models

import (
	"time"

	"gorm.io/datatypes"
)

// ProjectIdea is a pitch owned by a team.
type ProjectIdea struct {
	ID        uint                        `gorm:"primaryKey" json:"id"`
	TeamID    uint                        `gorm:"not null;index" json:"team_id"`
	Title     string                      `gorm:"not null" json:"title"`
	Summary   string                      `gorm:"type:text;not null" json:"summary"`
	TechStack datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"tech_stack"`
	CreatedAt time.Time                   `json:"created_at"`
}

type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"not null;index" json:"project_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Body      string    `gorm:"column:comment;type:text;not null" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// Endorsement is a single like on an idea. At most one per (project, user).
type Endorsement struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"not null;uniqueIndex:idx_endorsements_project_user;index" json:"project_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_endorsements_project_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

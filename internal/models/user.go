package models

import (
	"time"

	"gorm.io/datatypes"
)

// User is a platform account. Username and email are unique ignoring case.
type User struct {
	ID            uint                        `gorm:"primaryKey" json:"id"`
	Username      string                      `gorm:"type:varchar(64);not null" json:"username" validate:"required"`
	Email         string                      `gorm:"type:varchar(255);not null" json:"email" validate:"required,email"`
	PasswordHash  string                      `gorm:"not null" json:"-"`
	Bio           string                      `gorm:"type:text" json:"bio"`
	Skills        datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"skills"`
	GithubLink    string                      `json:"github_link"`
	PortfolioLink string                      `json:"portfolio_link"`
	AvatarURL     string                      `json:"avatar_url"`
	CreatedAt     time.Time                   `json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`
}

package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	HackathonStatusUpcoming  = "upcoming"
	HackathonStatusActive    = "active"
	HackathonStatusCompleted = "completed"
)

// Hackathon is a listed event teams form around.
type Hackathon struct {
	ID                   uint                        `gorm:"primaryKey" json:"id"`
	Title                string                      `gorm:"not null" json:"title"`
	Description          string                      `gorm:"type:text;not null" json:"description"`
	Theme                string                      `gorm:"not null;index" json:"theme"`
	StartDate            time.Time                   `gorm:"not null;index" json:"start_date"`
	EndDate              time.Time                   `gorm:"not null" json:"end_date"`
	RegistrationDeadline time.Time                   `gorm:"not null" json:"registration_deadline"`
	Prizes               string                      `json:"prizes"`
	Tags                 datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"tags"`
	ImageURL             string                      `json:"image_url"`
	Status               string                      `gorm:"type:varchar(16);not null;index" json:"status"`
	CreatedAt            time.Time                   `json:"created_at"`
}

// RegistrationOpen reports whether registrations are still accepted at t.
func (h *Hackathon) RegistrationOpen(t time.Time) bool {
	return !t.After(h.RegistrationDeadline)
}

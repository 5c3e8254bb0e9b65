package types

import "time"

type RegisterRequest struct {
	Username      string   `json:"username" validate:"required,notblank,min=3,max=64"`
	Email         string   `json:"email" validate:"required,email"`
	Password      string   `json:"password" validate:"required,min=8,max=72"`
	Bio           string   `json:"bio" validate:"max=2000"`
	Skills        []string `json:"skills" validate:"max=50,dive,max=64"`
	GithubLink    string   `json:"github_link" validate:"omitempty,url"`
	PortfolioLink string   `json:"portfolio_link" validate:"omitempty,url"`
	AvatarURL     string   `json:"avatar_url" validate:"omitempty,url"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
}

// UpdateProfileRequest is a merge patch; absent fields stay unchanged.
type UpdateProfileRequest struct {
	Username      *string   `json:"username" validate:"omitempty,notblank,min=3,max=64"`
	Email         *string   `json:"email" validate:"omitempty,email"`
	Bio           *string   `json:"bio" validate:"omitempty,max=2000"`
	Skills        *[]string `json:"skills" validate:"omitempty,max=50,dive,max=64"`
	GithubLink    *string   `json:"github_link" validate:"omitempty,url"`
	PortfolioLink *string   `json:"portfolio_link" validate:"omitempty,url"`
	AvatarURL     *string   `json:"avatar_url" validate:"omitempty,url"`
}

type CreateHackathonRequest struct {
	Title                string    `json:"title" validate:"required,notblank,max=200"`
	Description          string    `json:"description" validate:"required"`
	Theme                string    `json:"theme" validate:"required"`
	StartDate            time.Time `json:"start_date" validate:"required"`
	EndDate              time.Time `json:"end_date" validate:"required"`
	RegistrationDeadline time.Time `json:"registration_deadline" validate:"required"`
	Prizes               string    `json:"prizes"`
	Tags                 []string  `json:"tags" validate:"max=20,dive,max=64"`
	ImageURL             string    `json:"image_url" validate:"omitempty,url"`
	Status               string    `json:"status" validate:"omitempty,oneof=upcoming active completed"`
}

// RegistrationRequest may omit user_id; when present it must be the caller.
type RegistrationRequest struct {
	UserID      uint `json:"user_id"`
	HackathonID uint `json:"hackathon_id" validate:"required"`
}

type CreateTeamRequest struct {
	HackathonID    uint     `json:"hackathon_id" validate:"required"`
	Name           string   `json:"name" validate:"required,notblank,max=100"`
	Description    string   `json:"description" validate:"required"`
	RequiredSkills []string `json:"required_skills" validate:"max=30,dive,max=64"`
	MaxMembers     int      `json:"max_members" validate:"omitempty,min=1,max=50"`
}

type JoinTeamRequest struct {
	TeamID     uint   `json:"team_id" validate:"required"`
	InviteCode string `json:"invite_code" validate:"required"`
}

type CreateIdeaRequest struct {
	TeamID    uint     `json:"team_id" validate:"required"`
	Title     string   `json:"title" validate:"required,notblank,max=200"`
	Summary   string   `json:"summary" validate:"required"`
	TechStack []string `json:"tech_stack" validate:"max=30,dive,max=64"`
}

type CommentRequest struct {
	Comment string `json:"comment" validate:"required,notblank,max=2000"`
}

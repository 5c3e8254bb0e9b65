package repository

import (
	"context"

	"github.com/hackmap/engine/internal/models"
)

// Lookups return (nil, nil) when the row does not exist; callers decide
// whether absence is an error. Create methods enforce the composite
// uniqueness rules themselves and fail with the matching conflict code.

type UserRepository interface {
	// Create fails with CodeAlreadyExists when the username or email is taken, ignoring case.
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Update replaces the stored row; id and creation time are never changed.
	Update(ctx context.Context, u *models.User) error
}

type HackathonRepository interface {
	Create(ctx context.Context, h *models.Hackathon) error
	GetByID(ctx context.Context, id uint) (*models.Hackathon, error)
	List(ctx context.Context) ([]models.Hackathon, error)
}

type RegistrationRepository interface {
	// Create fails with CodeAlreadyRegistered on a duplicate (user, hackathon) pair.
	Create(ctx context.Context, r *models.Registration) error
	GetByUserAndHackathon(ctx context.Context, userID, hackathonID uint) (*models.Registration, error)
	// LockByUserAndHackathon is GetByUserAndHackathon holding a row lock until the
	// surrounding transaction ends.
	LockByUserAndHackathon(ctx context.Context, userID, hackathonID uint) (*models.Registration, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Registration, error)
}

type TeamRepository interface {
	// Create fails with CodeAlreadyExists when the invite code is already in use.
	Create(ctx context.Context, t *models.Team) error
	GetByID(ctx context.Context, id uint) (*models.Team, error)
	LockByID(ctx context.Context, id uint) (*models.Team, error)
	List(ctx context.Context) ([]models.Team, error)
	ListByHackathon(ctx context.Context, hackathonID uint) ([]models.Team, error)
	// ListByMember returns the teams where the user has an accepted membership.
	ListByMember(ctx context.Context, userID uint) ([]models.Team, error)
}

type TeamMemberRepository interface {
	// Create fails with CodeAlreadyMember when a row exists for (team, user) in any status.
	Create(ctx context.Context, m *models.TeamMember) error
	GetByTeamAndUser(ctx context.Context, teamID, userID uint) (*models.TeamMember, error)
	ListByTeam(ctx context.Context, teamID uint) ([]models.TeamMember, error)
	CountAccepted(ctx context.Context, teamID uint) (int, error)
}

type ProjectIdeaRepository interface {
	Create(ctx context.Context, p *models.ProjectIdea) error
	GetByID(ctx context.Context, id uint) (*models.ProjectIdea, error)
	List(ctx context.Context) ([]models.ProjectIdea, error)
}

type CommentRepository interface {
	Create(ctx context.Context, c *models.Comment) error
	ListByProject(ctx context.Context, projectID uint) ([]models.Comment, error)
	CountByProject(ctx context.Context, projectID uint) (int, error)
}

type EndorsementRepository interface {
	// Create fails with CodeAlreadyEndorsed on a duplicate (project, user) pair.
	Create(ctx context.Context, e *models.Endorsement) error
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, projectID, userID uint) (bool, error)
	Exists(ctx context.Context, projectID, userID uint) (bool, error)
	CountByProject(ctx context.Context, projectID uint) (int, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	GetByID(ctx context.Context, id uint) (*models.Notification, error)
	// ListByUser returns newest first: created_at descending, then id descending.
	ListByUser(ctx context.Context, userID uint) ([]models.Notification, error)
	// MarkRead fails with CodeNotFound when the notification does not exist.
	MarkRead(ctx context.Context, id uint) error
	CountUnread(ctx context.Context, userID uint) (int, error)
}

// Store groups the entity repositories behind one unit of work.
type Store interface {
	Users() UserRepository
	Hackathons() HackathonRepository
	Registrations() RegistrationRepository
	Teams() TeamRepository
	TeamMembers() TeamMemberRepository
	Ideas() ProjectIdeaRepository
	Comments() CommentRepository
	Endorsements() EndorsementRepository
	Notifications() NotificationRepository

	// WithinTx runs fn against a transactional view of the store. Writes made
	// through the view are discarded when fn returns an error. Nested calls
	// reuse the outer transaction.
	WithinTx(ctx context.Context, fn func(tx Store) error) error
}

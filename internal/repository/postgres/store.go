// Package postgres implements the entity store on PostgreSQL through Gorm.
package postgres

import (
	"context"

	"github.com/hackmap/engine/internal/models"
	"github.com/hackmap/engine/internal/repository"
	appErr "github.com/hackmap/engine/pkg/errors"
	"gorm.io/gorm"
)

// Store implements repository.Store. The Store handed to a WithinTx
// callback is bound to the open transaction.
type Store struct {
	db   *gorm.DB
	inTx bool
}

var _ repository.Store = (*Store)(nil)

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Users() repository.UserRepository {
	return userRepo{newBase[models.User](s.db, "user", appErr.New(appErr.CodeAlreadyExists, "username or email already exists"))}
}

func (s *Store) Hackathons() repository.HackathonRepository {
	return hackathonRepo{newBase[models.Hackathon](s.db, "hackathon", nil)}
}

func (s *Store) Registrations() repository.RegistrationRepository {
	return registrationRepo{newBase[models.Registration](s.db, "registration", appErr.New(appErr.CodeAlreadyRegistered, "already registered for this hackathon"))}
}

func (s *Store) Teams() repository.TeamRepository {
	return teamRepo{newBase[models.Team](s.db, "team", appErr.New(appErr.CodeAlreadyExists, "invite code already in use"))}
}

func (s *Store) TeamMembers() repository.TeamMemberRepository {
	return memberRepo{newBase[models.TeamMember](s.db, "team member", appErr.New(appErr.CodeAlreadyMember, "already a member of this team"))}
}

func (s *Store) Ideas() repository.ProjectIdeaRepository {
	return ideaRepo{newBase[models.ProjectIdea](s.db, "project idea", nil)}
}

func (s *Store) Comments() repository.CommentRepository {
	return commentRepo{newBase[models.Comment](s.db, "comment", nil)}
}

func (s *Store) Endorsements() repository.EndorsementRepository {
	return endorsementRepo{newBase[models.Endorsement](s.db, "endorsement", appErr.New(appErr.CodeAlreadyEndorsed, "already endorsed this idea"))}
}

func (s *Store) Notifications() repository.NotificationRepository {
	return notificationRepo{newBase[models.Notification](s.db, "notification", nil)}
}

func (s *Store) WithinTx(ctx context.Context, fn func(tx repository.Store) error) error {
	if s.inTx {
		return fn(s)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx, inTx: true})
	})
}

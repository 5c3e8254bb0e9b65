package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hackmap/engine/internal/metrics"
	"github.com/hackmap/engine/internal/models"
	"github.com/hackmap/engine/internal/repository"
	appErr "github.com/hackmap/engine/pkg/errors"
	"github.com/hackmap/engine/pkg/logger"
	"github.com/hackmap/engine/pkg/utils"
)

// inviteCodeAttempts bounds retries when a generated code is already taken.
const inviteCodeAttempts = 5

type TeamService interface {
	CreateTeam(ctx context.Context, creatorID uint, input *CreateTeamInput) (*models.Team, error)
	JoinTeam(ctx context.Context, userID, teamID uint, inviteCode string) (*models.TeamMember, error)
	GetTeam(ctx context.Context, teamID uint) (*models.Team, error)
	ListMembers(ctx context.Context, teamID uint) ([]models.TeamMember, error)

	// ListTeamsForHackathon lists every team when hackathonID is nil.
	ListTeamsForHackathon(ctx context.Context, hackathonID *uint) ([]models.Team, error)
	ListTeamsForUser(ctx context.Context, userID uint) ([]models.Team, error)
	// GetUserTeamForHackathon returns nil when the user has no team there.
	GetUserTeamForHackathon(ctx context.Context, userID, hackathonID uint) (*models.Team, error)
	IsUserInTeam(ctx context.Context, userID, teamID uint) (bool, error)

	GetRecommendedTeams(ctx context.Context, skills []string) ([]models.Team, error)
	RecommendTeamsForUser(ctx context.Context, userID uint) ([]models.Team, error)
}

type CreateTeamInput struct {
	HackathonID    uint
	Name           string
	Description    string
	RequiredSkills []string
	// MaxMembers defaults to models.DefaultMaxMembers when zero.
	MaxMembers int
}

type teamService struct {
	store repository.Store
	opts  options
}

func NewTeamService(store repository.Store, opts ...Option) TeamService {
	return &teamService{store: store, opts: buildOptions(opts)}
}

var _ TeamService = (*teamService)(nil)

func (s *teamService) CreateTeam(ctx context.Context, creatorID uint, input *CreateTeamInput) (*models.Team, error) {
	logger.L().Info("create team called", zap.Uint("user_id", creatorID), zap.Uint("hackathon_id", input.HackathonID))

	if input.MaxMembers < 0 {
		return nil, appErr.New(appErr.CodeInvalid, "max members must be positive")
	}

	// A failed insert poisons a database transaction, so a code collision
	// retries the whole unit rather than just the insert.
	for attempt := 0; attempt < inviteCodeAttempts; attempt++ {
		code, err := s.opts.inviteCode()
		if err != nil {
			return nil, appErr.Wrap(err, appErr.CodeInternal, "generate invite code failed")
		}
		team, err := s.createTeam(ctx, creatorID, input, code)
		if appErr.IsCode(err, appErr.CodeAlreadyExists) {
			logger.L().Warn("invite code collision", zap.Int("attempt", attempt+1))
			continue
		}
		if err != nil {
			return nil, err
		}

		metrics.TeamsCreated.Inc()
		logger.L().Info("team created", zap.Uint("team_id", team.ID), zap.Uint("user_id", creatorID))
		return team, nil
	}
	return nil, appErr.New(appErr.CodeInternal, "could not allocate a unique invite code")
}

func (s *teamService) createTeam(ctx context.Context, creatorID uint, input *CreateTeamInput, code string) (*models.Team, error) {
	var team *models.Team
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		h, err := tx.Hackathons().GetByID(ctx, input.HackathonID)
		if err != nil {
			return err
		}
		if h == nil {
			return appErr.New(appErr.CodeNotFound, "hackathon not found")
		}
		reg, err := tx.Registrations().LockByUserAndHackathon(ctx, creatorID, h.ID)
		if err != nil {
			return err
		}
		if reg == nil {
			return appErr.New(appErr.CodeNotRegistered, "you must register for the hackathon first")
		}
		current, err := userTeamInHackathon(ctx, tx, creatorID, h.ID)
		if err != nil {
			return err
		}
		if current != nil {
			return appErr.New(appErr.CodeAlreadyInTeam, "already in a team for this hackathon").WithMeta("team_id", current.ID)
		}

		maxMembers := input.MaxMembers
		if maxMembers == 0 {
			maxMembers = models.DefaultMaxMembers
		}
		team = &models.Team{
			Name:           input.Name,
			Description:    input.Description,
			HackathonID:    h.ID,
			CreatorID:      creatorID,
			RequiredSkills: utils.NormalizeSet(input.RequiredSkills),
			InviteCode:     code,
			MaxMembers:     maxMembers,
			CreatedAt:      s.opts.now(),
		}
		if err := tx.Teams().Create(ctx, team); err != nil {
			return err
		}

		joinedAt := team.CreatedAt
		return tx.TeamMembers().Create(ctx, &models.TeamMember{
			TeamID:   team.ID,
			UserID:   creatorID,
			Status:   models.MemberStatusAccepted,
			JoinedAt: &joinedAt,
		})
	})
	if err != nil {
		return nil, err
	}
	return team, nil
}

func (s *teamService) JoinTeam(ctx context.Context, userID, teamID uint, inviteCode string) (*models.TeamMember, error) {
	logger.L().Info("join team called", zap.Uint("user_id", userID), zap.Uint("team_id", teamID))

	var member *models.TeamMember
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		team, err := tx.Teams().LockByID(ctx, teamID)
		if err != nil {
			return err
		}
		if team == nil {
			return appErr.New(appErr.CodeNotFound, "team not found")
		}
		if team.InviteCode != inviteCode {
			return appErr.New(appErr.CodeInvalidInviteCode, "invalid invite code")
		}
		existing, err := tx.TeamMembers().GetByTeamAndUser(ctx, teamID, userID)
		if err != nil {
			return err
		}
		if existing != nil {
			return appErr.New(appErr.CodeAlreadyMember, "already a member of this team")
		}
		reg, err := tx.Registrations().LockByUserAndHackathon(ctx, userID, team.HackathonID)
		if err != nil {
			return err
		}
		if reg == nil {
			return appErr.New(appErr.CodeNotRegistered, "you must register for the hackathon first")
		}
		current, err := userTeamInHackathon(ctx, tx, userID, team.HackathonID)
		if err != nil {
			return err
		}
		if current != nil {
			return appErr.New(appErr.CodeAlreadyInTeam, "already in a team for this hackathon").WithMeta("team_id", current.ID)
		}
		accepted, err := tx.TeamMembers().CountAccepted(ctx, teamID)
		if err != nil {
			return err
		}
		if accepted >= team.MaxMembers {
			return appErr.New(appErr.CodeTeamFull, "team is full")
		}

		now := s.opts.now()
		member = &models.TeamMember{
			TeamID:   teamID,
			UserID:   userID,
			Status:   models.MemberStatusAccepted,
			JoinedAt: &now,
		}
		if err := tx.TeamMembers().Create(ctx, member); err != nil {
			return err
		}

		related := team.ID
		_, err = appendNotification(ctx, tx.Notifications(), s.opts, team.CreatorID,
			models.NotificationTeamJoinRequest,
			fmt.Sprintf("A new member has joined your team: %s", team.Name),
			&related)
		return err
	})
	if err != nil {
		metrics.TeamJoins.WithLabelValues(string(appErr.CodeOf(err))).Inc()
		return nil, err
	}

	metrics.TeamJoins.WithLabelValues("joined").Inc()
	metrics.Notifications.WithLabelValues(models.NotificationTeamJoinRequest).Inc()
	logger.L().Info("user joined team", zap.Uint("user_id", userID), zap.Uint("team_id", teamID))
	return member, nil
}

func (s *teamService) GetTeam(ctx context.Context, teamID uint) (*models.Team, error) {
	team, err := s.store.Teams().GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, appErr.New(appErr.CodeNotFound, "team not found")
	}
	return team, nil
}

func (s *teamService) ListMembers(ctx context.Context, teamID uint) ([]models.TeamMember, error) {
	if _, err := s.GetTeam(ctx, teamID); err != nil {
		return nil, err
	}
	return s.store.TeamMembers().ListByTeam(ctx, teamID)
}

func (s *teamService) ListTeamsForHackathon(ctx context.Context, hackathonID *uint) ([]models.Team, error) {
	if hackathonID == nil {
		return s.store.Teams().List(ctx)
	}
	return s.store.Teams().ListByHackathon(ctx, *hackathonID)
}

func (s *teamService) ListTeamsForUser(ctx context.Context, userID uint) ([]models.Team, error) {
	return s.store.Teams().ListByMember(ctx, userID)
}

func (s *teamService) GetUserTeamForHackathon(ctx context.Context, userID, hackathonID uint) (*models.Team, error) {
	return userTeamInHackathon(ctx, s.store, userID, hackathonID)
}

func (s *teamService) IsUserInTeam(ctx context.Context, userID, teamID uint) (bool, error) {
	m, err := s.store.TeamMembers().GetByTeamAndUser(ctx, teamID, userID)
	if err != nil {
		return false, err
	}
	return m != nil && m.Accepted(), nil
}

// GetRecommendedTeams returns, in store order, every team whose required
// skills share at least one exact entry with skills.
func (s *teamService) GetRecommendedTeams(ctx context.Context, skills []string) ([]models.Team, error) {
	wanted := utils.NormalizeSet(skills)
	out := []models.Team{}
	if len(wanted) == 0 {
		return out, nil
	}
	teams, err := s.store.Teams().List(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range teams {
		if utils.Overlaps(t.RequiredSkills, wanted) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *teamService) RecommendTeamsForUser(ctx context.Context, userID uint) ([]models.Team, error) {
	u, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, appErr.New(appErr.CodeNotFound, "user not found")
	}
	return s.GetRecommendedTeams(ctx, u.Skills)
}

// userTeamInHackathon finds the user's accepted team within a hackathon.
// Joins and creates keep this to at most one.
func userTeamInHackathon(ctx context.Context, store repository.Store, userID, hackathonID uint) (*models.Team, error) {
	teams, err := store.Teams().ListByMember(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range teams {
		if teams[i].HackathonID == hackathonID {
			return &teams[i], nil
		}
	}
	return nil, nil
}

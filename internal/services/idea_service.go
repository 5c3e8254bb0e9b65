package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/hackmap/engine/internal/metrics"
	"github.com/hackmap/engine/internal/models"
	"github.com/hackmap/engine/internal/repository"
	appErr "github.com/hackmap/engine/pkg/errors"
	"github.com/hackmap/engine/pkg/logger"
)

type IdeaService interface {
	CreateProjectIdea(ctx context.Context, actingUserID uint, input *CreateProjectIdeaInput) (*models.ProjectIdea, error)
	// ListProjectIdeasWithAggregates reports IsEndorsed only for a non-nil viewer.
	ListProjectIdeasWithAggregates(ctx context.Context, viewerID *uint) ([]ProjectIdeaWithAggregates, error)
	GetProjectIdea(ctx context.Context, projectID uint, viewerID *uint) (*ProjectIdeaWithAggregates, error)

	Endorse(ctx context.Context, userID, projectID uint) (*models.Endorsement, error)
	// Unendorse is a no-op when the user has not endorsed the idea.
	Unendorse(ctx context.Context, userID, projectID uint) error

	AddComment(ctx context.Context, projectID, userID uint, body string) (*models.Comment, error)
	ListComments(ctx context.Context, projectID uint) ([]models.Comment, error)
}

type CreateProjectIdeaInput struct {
	TeamID    uint
	Title     string
	Summary   string
	TechStack []string
}

type ProjectIdeaWithAggregates struct {
	models.ProjectIdea
	Team             *models.Team `json:"team"`
	EndorsementCount int          `json:"endorsement_count"`
	CommentCount     int          `json:"comment_count"`
	IsEndorsed       bool         `json:"is_endorsed"`
}

type ideaService struct {
	store repository.Store
	opts  options
}

func NewIdeaService(store repository.Store, opts ...Option) IdeaService {
	return &ideaService{store: store, opts: buildOptions(opts)}
}

var _ IdeaService = (*ideaService)(nil)

func (s *ideaService) CreateProjectIdea(ctx context.Context, actingUserID uint, input *CreateProjectIdeaInput) (*models.ProjectIdea, error) {
	var idea *models.ProjectIdea
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		team, err := tx.Teams().GetByID(ctx, input.TeamID)
		if err != nil {
			return err
		}
		if team == nil {
			return appErr.New(appErr.CodeNotFound, "team not found")
		}
		m, err := tx.TeamMembers().GetByTeamAndUser(ctx, team.ID, actingUserID)
		if err != nil {
			return err
		}
		if m == nil || !m.Accepted() {
			return appErr.New(appErr.CodeNotTeamMember, "you must be a member of the team")
		}
		idea = &models.ProjectIdea{
			TeamID:    team.ID,
			Title:     input.Title,
			Summary:   input.Summary,
			TechStack: input.TechStack,
			CreatedAt: s.opts.now(),
		}
		return tx.Ideas().Create(ctx, idea)
	})
	if err != nil {
		return nil, err
	}

	logger.L().Info("project idea created", zap.Uint("project_id", idea.ID), zap.Uint("team_id", idea.TeamID))
	return idea, nil
}

func (s *ideaService) ListProjectIdeasWithAggregates(ctx context.Context, viewerID *uint) ([]ProjectIdeaWithAggregates, error) {
	ideas, err := s.store.Ideas().List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ProjectIdeaWithAggregates, 0, len(ideas))
	for _, idea := range ideas {
		agg, err := s.aggregate(ctx, idea, viewerID)
		if err != nil {
			return nil, err
		}
		out = append(out, *agg)
	}
	return out, nil
}

func (s *ideaService) GetProjectIdea(ctx context.Context, projectID uint, viewerID *uint) (*ProjectIdeaWithAggregates, error) {
	idea, err := s.requireIdea(ctx, s.store, projectID)
	if err != nil {
		return nil, err
	}
	return s.aggregate(ctx, *idea, viewerID)
}

func (s *ideaService) aggregate(ctx context.Context, idea models.ProjectIdea, viewerID *uint) (*ProjectIdeaWithAggregates, error) {
	team, err := s.store.Teams().GetByID(ctx, idea.TeamID)
	if err != nil {
		return nil, err
	}
	endorsements, err := s.store.Endorsements().CountByProject(ctx, idea.ID)
	if err != nil {
		return nil, err
	}
	comments, err := s.store.Comments().CountByProject(ctx, idea.ID)
	if err != nil {
		return nil, err
	}
	endorsed := false
	if viewerID != nil {
		if endorsed, err = s.store.Endorsements().Exists(ctx, idea.ID, *viewerID); err != nil {
			return nil, err
		}
	}
	return &ProjectIdeaWithAggregates{
		ProjectIdea:      idea,
		Team:             team,
		EndorsementCount: endorsements,
		CommentCount:     comments,
		IsEndorsed:       endorsed,
	}, nil
}

func (s *ideaService) requireIdea(ctx context.Context, store repository.Store, projectID uint) (*models.ProjectIdea, error) {
	idea, err := store.Ideas().GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if idea == nil {
		return nil, appErr.New(appErr.CodeNotFound, "project idea not found")
	}
	return idea, nil
}

func (s *ideaService) Endorse(ctx context.Context, userID, projectID uint) (*models.Endorsement, error) {
	var e *models.Endorsement
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		if _, err := s.requireIdea(ctx, tx, projectID); err != nil {
			return err
		}
		exists, err := tx.Endorsements().Exists(ctx, projectID, userID)
		if err != nil {
			return err
		}
		if exists {
			return appErr.New(appErr.CodeAlreadyEndorsed, "already endorsed this idea")
		}
		e = &models.Endorsement{ProjectID: projectID, UserID: userID, CreatedAt: s.opts.now()}
		return tx.Endorsements().Create(ctx, e)
	})
	if err != nil {
		return nil, err
	}

	metrics.Endorsements.Inc()
	logger.L().Info("idea endorsed", zap.Uint("project_id", projectID), zap.Uint("user_id", userID))
	return e, nil
}

func (s *ideaService) Unendorse(ctx context.Context, userID, projectID uint) error {
	if _, err := s.requireIdea(ctx, s.store, projectID); err != nil {
		return err
	}
	removed, err := s.store.Endorsements().Delete(ctx, projectID, userID)
	if err != nil {
		return err
	}
	if removed {
		logger.L().Info("idea unendorsed", zap.Uint("project_id", projectID), zap.Uint("user_id", userID))
	}
	return nil
}

func (s *ideaService) AddComment(ctx context.Context, projectID, userID uint, body string) (*models.Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, appErr.New(appErr.CodeInvalid, "comment must not be empty")
	}
	if _, err := s.requireIdea(ctx, s.store, projectID); err != nil {
		return nil, err
	}
	c := &models.Comment{ProjectID: projectID, UserID: userID, Body: body, CreatedAt: s.opts.now()}
	if err := s.store.Comments().Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ideaService) ListComments(ctx context.Context, projectID uint) ([]models.Comment, error) {
	if _, err := s.requireIdea(ctx, s.store, projectID); err != nil {
		return nil, err
	}
	return s.store.Comments().ListByProject(ctx, projectID)
}

package postgres

import (
	"context"

	"github.com/hackmap/engine/internal/models"
	appErr "github.com/hackmap/engine/pkg/errors"
)

type ideaRepo struct {
	baseRepository[models.ProjectIdea]
}

func (r ideaRepo) Create(ctx context.Context, p *models.ProjectIdea) error {
	return r.create(ctx, p)
}

func (r ideaRepo) GetByID(ctx context.Context, id uint) (*models.ProjectIdea, error) {
	return r.getByID(ctx, id)
}

func (r ideaRepo) List(ctx context.Context) ([]models.ProjectIdea, error) {
	return r.find(r.db.WithContext(ctx).Order("id"))
}

type commentRepo struct {
	baseRepository[models.Comment]
}

func (r commentRepo) Create(ctx context.Context, c *models.Comment) error {
	return r.create(ctx, c)
}

func (r commentRepo) ListByProject(ctx context.Context, projectID uint) ([]models.Comment, error) {
	return r.find(r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("id"))
}

func (r commentRepo) CountByProject(ctx context.Context, projectID uint) (int, error) {
	return r.count(r.db.WithContext(ctx).Where("project_id = ?", projectID))
}

type endorsementRepo struct {
	baseRepository[models.Endorsement]
}

func (r endorsementRepo) Create(ctx context.Context, e *models.Endorsement) error {
	return r.create(ctx, e)
}

func (r endorsementRepo) Delete(ctx context.Context, projectID, userID uint) (bool, error) {
	res := r.db.WithContext(ctx).Where("project_id = ? AND user_id = ?", projectID, userID).Delete(&models.Endorsement{})
	if res.Error != nil {
		return false, appErr.Wrap(res.Error, appErr.CodeInternal, "delete endorsement failed")
	}
	return res.RowsAffected > 0, nil
}

func (r endorsementRepo) Exists(ctx context.Context, projectID, userID uint) (bool, error) {
	n, err := r.count(r.db.WithContext(ctx).Where("project_id = ? AND user_id = ?", projectID, userID))
	return n > 0, err
}

func (r endorsementRepo) CountByProject(ctx context.Context, projectID uint) (int, error) {
	return r.count(r.db.WithContext(ctx).Where("project_id = ?", projectID))
}

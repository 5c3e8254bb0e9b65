package postgres

import (
	"context"

	"github.com/hackmap/engine/internal/models"
)

type hackathonRepo struct {
	baseRepository[models.Hackathon]
}

func (r hackathonRepo) Create(ctx context.Context, h *models.Hackathon) error {
	return r.create(ctx, h)
}

func (r hackathonRepo) GetByID(ctx context.Context, id uint) (*models.Hackathon, error) {
	return r.getByID(ctx, id)
}

func (r hackathonRepo) List(ctx context.Context) ([]models.Hackathon, error) {
	return r.find(r.db.WithContext(ctx).Order("id"))
}

package postgres

import (
	"context"

	"github.com/hackmap/engine/internal/models"
	"gorm.io/gorm/clause"
)

type registrationRepo struct {
	baseRepository[models.Registration]
}

func (r registrationRepo) Create(ctx context.Context, reg *models.Registration) error {
	return r.create(ctx, reg)
}

func (r registrationRepo) GetByUserAndHackathon(ctx context.Context, userID, hackathonID uint) (*models.Registration, error) {
	return r.first(r.db.WithContext(ctx).Where("user_id = ? AND hackathon_id = ?", userID, hackathonID))
}

func (r registrationRepo) LockByUserAndHackathon(ctx context.Context, userID, hackathonID uint) (*models.Registration, error) {
	return r.first(r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND hackathon_id = ?", userID, hackathonID))
}

func (r registrationRepo) ListByUser(ctx context.Context, userID uint) ([]models.Registration, error) {
	return r.find(r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id"))
}

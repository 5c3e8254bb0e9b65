package postgres

import (
	"context"

	"github.com/hackmap/engine/internal/models"
	appErr "github.com/hackmap/engine/pkg/errors"
)

type userRepo struct {
	baseRepository[models.User]
}

func (r userRepo) Create(ctx context.Context, u *models.User) error {
	if err := r.checkUnique(ctx, u); err != nil {
		return err
	}
	return r.create(ctx, u)
}

// checkUnique gives a precise message for the common case; the lower()
// unique indexes still catch races and surface the generic conflict.
func (r userRepo) checkUnique(ctx context.Context, u *models.User) error {
	if other, err := r.GetByUsername(ctx, u.Username); err != nil {
		return err
	} else if other != nil && other.ID != u.ID {
		return appErr.New(appErr.CodeAlreadyExists, "username already exists")
	}
	if other, err := r.GetByEmail(ctx, u.Email); err != nil {
		return err
	} else if other != nil && other.ID != u.ID {
		return appErr.New(appErr.CodeAlreadyExists, "email already exists")
	}
	return nil
}

func (r userRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return r.getByID(ctx, id)
}

func (r userRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.first(r.db.WithContext(ctx).Where("lower(username) = lower(?)", username))
}

func (r userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.first(r.db.WithContext(ctx).Where("lower(email) = lower(?)", email))
}

func (r userRepo) Update(ctx context.Context, u *models.User) error {
	prev, err := r.getByID(ctx, u.ID)
	if err != nil {
		return err
	}
	if prev == nil {
		return appErr.New(appErr.CodeNotFound, "user not found")
	}
	if err := r.checkUnique(ctx, u); err != nil {
		return err
	}
	u.CreatedAt = prev.CreatedAt
	if err := r.db.WithContext(ctx).Omit("created_at").Save(u).Error; err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "update user failed")
	}
	return nil
}

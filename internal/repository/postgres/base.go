package postgres

import (
	"context"
	"errors"

	appErr "github.com/hackmap/engine/pkg/errors"
	"gorm.io/gorm"
)

// baseRepository carries the CRUD plumbing shared by the entity repositories.
// conflict is returned when an insert trips a unique index.
type baseRepository[T any] struct {
	db       *gorm.DB
	entity   string
	conflict *appErr.AppError
}

func newBase[T any](db *gorm.DB, entity string, conflict *appErr.AppError) baseRepository[T] {
	return baseRepository[T]{db: db, entity: entity, conflict: conflict}
}

func (r baseRepository[T]) create(ctx context.Context, obj *T) error {
	if err := r.db.WithContext(ctx).Create(obj).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) && r.conflict != nil {
			return appErr.Wrap(err, r.conflict.Code, r.conflict.Message)
		}
		return appErr.Wrap(err, appErr.CodeInternal, "create "+r.entity+" failed")
	}
	return nil
}

// first runs q and returns (nil, nil) when no row matches.
func (r baseRepository[T]) first(q *gorm.DB) (*T, error) {
	var out T
	if err := q.First(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, appErr.Wrap(err, appErr.CodeInternal, "get "+r.entity+" failed")
	}
	return &out, nil
}

func (r baseRepository[T]) getByID(ctx context.Context, id uint) (*T, error) {
	return r.first(r.db.WithContext(ctx).Where("id = ?", id))
}

func (r baseRepository[T]) find(q *gorm.DB) ([]T, error) {
	out := []T{}
	if err := q.Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list "+r.entity+" failed")
	}
	return out, nil
}

func (r baseRepository[T]) count(q *gorm.DB) (int, error) {
	var n int64
	var model T
	if err := q.Model(&model).Count(&n).Error; err != nil {
		return 0, appErr.Wrap(err, appErr.CodeInternal, "count "+r.entity+" failed")
	}
	return int(n), nil
}

package postgres

import (
	"context"

	"github.com/hackmap/engine/internal/models"
	appErr "github.com/hackmap/engine/pkg/errors"
)

type notificationRepo struct {
	baseRepository[models.Notification]
}

func (r notificationRepo) Create(ctx context.Context, n *models.Notification) error {
	return r.create(ctx, n)
}

func (r notificationRepo) GetByID(ctx context.Context, id uint) (*models.Notification, error) {
	return r.getByID(ctx, id)
}

func (r notificationRepo) ListByUser(ctx context.Context, userID uint) ([]models.Notification, error) {
	return r.find(r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC, id DESC"))
}

// MarkRead relies on PostgreSQL counting matched rows, so re-marking a read
// notification is not mistaken for a missing one.
func (r notificationRepo) MarkRead(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&models.Notification{}).Where("id = ?", id).Update("read", true)
	if res.Error != nil {
		return appErr.Wrap(res.Error, appErr.CodeInternal, "mark notification read failed")
	}
	if res.RowsAffected == 0 {
		return appErr.New(appErr.CodeNotFound, "notification not found")
	}
	return nil
}

func (r notificationRepo) CountUnread(ctx context.Context, userID uint) (int, error) {
	return r.count(r.db.WithContext(ctx).Where("user_id = ? AND read = false", userID))
}

package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/hackmap/engine/internal/metrics"
	"github.com/hackmap/engine/internal/models"
	"github.com/hackmap/engine/internal/repository"
	appErr "github.com/hackmap/engine/pkg/errors"
	"github.com/hackmap/engine/pkg/logger"
)

type NotificationService interface {
	Notify(ctx context.Context, userID uint, kind, content string, relatedID *uint) (*models.Notification, error)
	// ListForUser returns newest first.
	ListForUser(ctx context.Context, userID uint) ([]models.Notification, error)
	MarkRead(ctx context.Context, id, actingUserID uint) (*models.Notification, error)
	UnreadCount(ctx context.Context, userID uint) (int, error)
}

type notificationService struct {
	store repository.Store
	opts  options
}

func NewNotificationService(store repository.Store, opts ...Option) NotificationService {
	return &notificationService{store: store, opts: buildOptions(opts)}
}

var _ NotificationService = (*notificationService)(nil)

// appendNotification writes an unread notification through repo, which may
// be bound to a transaction. Callers count it in metrics once committed.
func appendNotification(ctx context.Context, repo repository.NotificationRepository, o options, userID uint, kind, content string, relatedID *uint) (*models.Notification, error) {
	n := &models.Notification{
		UserID:    userID,
		Type:      kind,
		Content:   content,
		RelatedID: relatedID,
		CreatedAt: o.now(),
	}
	if err := repo.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *notificationService) Notify(ctx context.Context, userID uint, kind, content string, relatedID *uint) (*models.Notification, error) {
	n, err := appendNotification(ctx, s.store.Notifications(), s.opts, userID, kind, content, relatedID)
	if err != nil {
		return nil, err
	}
	metrics.Notifications.WithLabelValues(kind).Inc()
	logger.L().Debug("notification appended", zap.Uint("user_id", userID), zap.String("type", kind))
	return n, nil
}

func (s *notificationService) ListForUser(ctx context.Context, userID uint) ([]models.Notification, error) {
	return s.store.Notifications().ListByUser(ctx, userID)
}

func (s *notificationService) MarkRead(ctx context.Context, id, actingUserID uint) (*models.Notification, error) {
	var out *models.Notification
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		n, err := tx.Notifications().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if n == nil {
			return appErr.New(appErr.CodeNotFound, "notification not found")
		}
		if n.UserID != actingUserID {
			return appErr.New(appErr.CodeForbidden, "cannot modify another user's notification")
		}
		if err := tx.Notifications().MarkRead(ctx, id); err != nil {
			return err
		}
		n.Read = true
		out = n
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userID uint) (int, error) {
	return s.store.Notifications().CountUnread(ctx, userID)
}

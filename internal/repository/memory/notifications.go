package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/hackmap/engine/internal/models"
	appErr "github.com/hackmap/engine/pkg/errors"
)

type notificationRepo struct{ scope }

func cloneNotification(n models.Notification) models.Notification {
	n.RelatedID = copyPtr(n.RelatedID)
	return n
}

func (r notificationRepo) Create(ctx context.Context, n *models.Notification) error {
	defer r.lock()()
	n.ID = r.s.notifications.nextID()
	n.CreatedAt = r.stamp(n.CreatedAt)
	row := cloneNotification(*n)
	r.s.notifications.put(row.ID, row)
	r.s.notificationsByUser[row.UserID] = append(r.s.notificationsByUser[row.UserID], row.ID)
	r.undo(func() {
		r.s.notifications.remove(row.ID)
		r.s.notificationsByUser[row.UserID] = removeID(r.s.notificationsByUser[row.UserID], row.ID)
	})
	return nil
}

func (r notificationRepo) GetByID(ctx context.Context, id uint) (*models.Notification, error) {
	defer r.rlock()()
	n, ok := r.s.notifications.get(id)
	return ptrOf(cloneNotification(n), ok), nil
}

func (r notificationRepo) ListByUser(ctx context.Context, userID uint) ([]models.Notification, error) {
	defer r.rlock()()
	out := mapRows(r.s.notifications.pick(r.s.notificationsByUser[userID]), cloneNotification)
	slices.SortStableFunc(out, func(a, b models.Notification) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return out, nil
}

func (r notificationRepo) MarkRead(ctx context.Context, id uint) error {
	defer r.lock()()
	n, ok := r.s.notifications.get(id)
	if !ok {
		return appErr.New(appErr.CodeNotFound, "notification not found")
	}
	if n.Read {
		return nil
	}
	n.Read = true
	r.s.notifications.put(id, n)
	r.undo(func() {
		n.Read = false
		r.s.notifications.put(id, n)
	})
	return nil
}

func (r notificationRepo) CountUnread(ctx context.Context, userID uint) (int, error) {
	defer r.rlock()()
	n := 0
	for _, row := range r.s.notifications.pick(r.s.notificationsByUser[userID]) {
		if !row.Read {
			n++
		}
	}
	return n, nil
}

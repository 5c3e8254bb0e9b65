package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackmap/engine/internal/models"
	appErr "github.com/hackmap/engine/pkg/errors"
)

func TestNotificationsNewestFirst(t *testing.T) {
	f := newFixture(t)

	steps := []time.Duration{time.Minute, 0, -time.Hour, 2 * time.Minute, 0}
	for _, d := range steps {
		f.clock.advance(d)
		_, err := f.notifications.Notify(f.ctx, 1, models.NotificationTeamInvite, "hi", nil)
		require.NoError(t, err)
	}

	list, err := f.notifications.ListForUser(f.ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, len(steps))
	for i := 1; i < len(list); i++ {
		assert.False(t, list[i].CreatedAt.After(list[i-1].CreatedAt), "entry %d is newer than entry %d", i, i-1)
	}

	other, err := f.notifications.ListForUser(f.ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestMarkRead(t *testing.T) {
	f := newFixture(t)
	related := uint(7)
	n, err := f.notifications.Notify(f.ctx, 1, models.NotificationDeadlineReminder, "soon", &related)
	require.NoError(t, err)
	assert.False(t, n.Read)

	count, err := f.notifications.UnreadCount(f.ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = f.notifications.MarkRead(f.ctx, n.ID, 2)
	assert.True(t, appErr.IsCode(err, appErr.CodeForbidden))

	_, err = f.notifications.MarkRead(f.ctx, 404, 1)
	assert.True(t, appErr.IsCode(err, appErr.CodeNotFound))

	for i := 0; i < 2; i++ {
		got, err := f.notifications.MarkRead(f.ctx, n.ID, 1)
		require.NoError(t, err)
		assert.True(t, got.Read)
	}

	count, err = f.notifications.UnreadCount(f.ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, count)
}

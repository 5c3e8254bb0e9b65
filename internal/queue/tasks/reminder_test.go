package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hackmap/engine/internal/models"
	"github.com/hackmap/engine/internal/repository/memory"
	"github.com/hackmap/engine/internal/services"
	"github.com/hackmap/engine/pkg/logger"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests (required by tasks)
	_, err := logger.Init("info", "json")
	if err != nil {
		panic("failed to init logger: " + err.Error())
	}
	os.Exit(m.Run())
}

type mockEnqueuer struct {
	mock.Mock
}

func (m *mockEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	args := m.Called(ctx, task, opts)
	if v := args.Get(0); v != nil {
		return v.(*asynq.TaskInfo), args.Error(1)
	}
	return nil, args.Error(1)
}

func optionValue(opts []asynq.Option, typ asynq.OptionType) any {
	for _, o := range opts {
		if o.Type() == typ {
			return o.Value()
		}
	}
	return nil
}

func TestScheduleDeadlineReminder(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	h := &models.Hackathon{ID: 4, RegistrationDeadline: now.Add(72 * time.Hour)}

	client := new(mockEnqueuer)
	var captured []asynq.Option
	client.On("EnqueueContext", mock.Anything, mock.MatchedBy(func(task *asynq.Task) bool {
		var p DeadlineReminderPayload
		return task.Type() == TypeDeadlineReminder &&
			json.Unmarshal(task.Payload(), &p) == nil &&
			p.UserID == 9 && p.HackathonID == 4
	}), mock.Anything).Run(func(args mock.Arguments) {
		captured = args.Get(2).([]asynq.Option)
	}).Return(&asynq.TaskInfo{ID: "reminder:9:4"}, nil).Once()

	s := NewReminderScheduler(client, 24*time.Hour)
	s.now = func() time.Time { return now }

	require.NoError(t, s.ScheduleDeadlineReminder(context.Background(), 9, h))
	client.AssertExpectations(t)
	assert.Equal(t, now.Add(48*time.Hour), optionValue(captured, asynq.ProcessAtOpt))
	assert.Equal(t, "reminder:9:4", optionValue(captured, asynq.TaskIDOpt))
}

func TestScheduleReminderInsideLeadRunsNow(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	h := &models.Hackathon{ID: 1, RegistrationDeadline: now.Add(time.Hour)}

	client := new(mockEnqueuer)
	var captured []asynq.Option
	client.On("EnqueueContext", mock.Anything, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		captured = args.Get(2).([]asynq.Option)
	}).Return(&asynq.TaskInfo{ID: "reminder:1:1"}, nil)

	s := NewReminderScheduler(client, 24*time.Hour)
	s.now = func() time.Time { return now }

	require.NoError(t, s.ScheduleDeadlineReminder(context.Background(), 1, h))
	assert.Equal(t, now, optionValue(captured, asynq.ProcessAtOpt))
}

func TestScheduleReminderDuplicateIsNotAnError(t *testing.T) {
	client := new(mockEnqueuer)
	client.On("EnqueueContext", mock.Anything, mock.Anything, mock.Anything).Return(nil, asynq.ErrTaskIDConflict)

	s := NewReminderScheduler(client, time.Hour)
	err := s.ScheduleDeadlineReminder(context.Background(), 1, &models.Hackathon{ID: 1, RegistrationDeadline: time.Now().Add(48 * time.Hour)})
	assert.NoError(t, err)

	failing := new(mockEnqueuer)
	failing.On("EnqueueContext", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("redis down"))
	s = NewReminderScheduler(failing, time.Hour)
	err = s.ScheduleDeadlineReminder(context.Background(), 1, &models.Hackathon{ID: 1, RegistrationDeadline: time.Now().Add(48 * time.Hour)})
	assert.Error(t, err)
}

func newReminderFixture(t *testing.T, deadline time.Time) (*memory.Store, *DeadlineReminderHandler, *models.Hackathon) {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	h := &models.Hackathon{Title: "AI Summit", RegistrationDeadline: deadline, StartDate: deadline.Add(24 * time.Hour)}
	require.NoError(t, store.Hackathons().Create(ctx, h))
	require.NoError(t, store.Registrations().Create(ctx, &models.Registration{UserID: 2, HackathonID: h.ID}))
	return store, NewDeadlineReminderHandler(store, services.NewNotificationService(store)), h
}

func TestHandleDeadlineReminder(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	store, handler, h := newReminderFixture(t, now.Add(2*time.Hour))
	handler.now = func() time.Time { return now }

	task, err := NewDeadlineReminderTask(2, h.ID, "")
	require.NoError(t, err)
	require.NoError(t, handler.HandleDeadlineReminder(ctx, task))

	notes, err := store.Notifications().ListByUser(ctx, 2)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, models.NotificationDeadlineReminder, notes[0].Type)
	assert.Contains(t, notes[0].Content, "AI Summit")
	require.NotNil(t, notes[0].RelatedID)
	assert.Equal(t, h.ID, *notes[0].RelatedID)
}

func TestHandleDeadlineReminderSkips(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

	store, handler, h := newReminderFixture(t, now.Add(-time.Minute))
	handler.now = func() time.Time { return now }

	cases := map[string]*asynq.Task{}
	cases["deadline passed"], _ = NewDeadlineReminderTask(2, h.ID, "")
	cases["not registered"], _ = NewDeadlineReminderTask(3, h.ID, "")
	cases["unknown hackathon"], _ = NewDeadlineReminderTask(2, 99, "")

	for name, task := range cases {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, handler.HandleDeadlineReminder(ctx, task))
		})
	}

	for _, user := range []uint{2, 3} {
		notes, err := store.Notifications().ListByUser(ctx, user)
		require.NoError(t, err)
		assert.Empty(t, notes)
	}

	err := handler.HandleDeadlineReminder(ctx, asynq.NewTask(TypeDeadlineReminder, []byte("{")))
	require.Error(t, err)
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestEpochScopesTaskIDsAndPayloads(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	h := &models.Hackathon{ID: 1, RegistrationDeadline: now.Add(72 * time.Hour)}

	client := new(mockEnqueuer)
	var task *asynq.Task
	var captured []asynq.Option
	client.On("EnqueueContext", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			task = args.Get(1).(*asynq.Task)
			captured = args.Get(2).([]asynq.Option)
		}).
		Return(&asynq.TaskInfo{ID: "x"}, nil)

	s := NewReminderScheduler(client, time.Hour).WithEpoch("1760529600")
	s.now = func() time.Time { return now }
	require.NoError(t, s.ScheduleDeadlineReminder(context.Background(), 3, h))
	assert.Equal(t, "reminder:1760529600:3:1", optionValue(captured, asynq.TaskIDOpt))

	var p DeadlineReminderPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	assert.Equal(t, "1760529600", p.Epoch)
}

func TestHandleDeadlineReminderIgnoresOtherEpoch(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	store, handler, h := newReminderFixture(t, now.Add(2*time.Hour))
	handler.now = func() time.Time { return now }
	handler.WithEpoch("current")

	stale, err := NewDeadlineReminderTask(2, h.ID, "previous")
	require.NoError(t, err)
	require.NoError(t, handler.HandleDeadlineReminder(ctx, stale))
	notes, err := store.Notifications().ListByUser(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, notes)

	fresh, err := NewDeadlineReminderTask(2, h.ID, "current")
	require.NoError(t, err)
	require.NoError(t, handler.HandleDeadlineReminder(ctx, fresh))
	notes, err = store.Notifications().ListByUser(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, notes, 1)
}

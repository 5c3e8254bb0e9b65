package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/hackmap/engine/internal/metrics"
	"github.com/hackmap/engine/internal/models"
	"github.com/hackmap/engine/internal/repository"
	"github.com/hackmap/engine/internal/services"
	"github.com/hackmap/engine/pkg/logger"
)

const TypeDeadlineReminder = "hackathon:deadline_reminder"

// DeadlineReminderPayload is the task payload for deadline reminders.
// Epoch names the store generation the ids belong to; it is empty for
// durable stores.
type DeadlineReminderPayload struct {
	UserID      uint   `json:"user_id"`
	HackathonID uint   `json:"hackathon_id"`
	Epoch       string `json:"epoch,omitempty"`
}

func NewDeadlineReminderTask(userID, hackathonID uint, epoch string) (*asynq.Task, error) {
	pb, err := json.Marshal(DeadlineReminderPayload{UserID: userID, HackathonID: hackathonID, Epoch: epoch})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeDeadlineReminder, pb), nil
}

func reminderTaskID(userID, hackathonID uint, epoch string) string {
	if epoch == "" {
		return fmt.Sprintf("reminder:%d:%d", userID, hackathonID)
	}
	return fmt.Sprintf("reminder:%s:%d:%d", epoch, userID, hackathonID)
}

// Enqueuer is the part of *asynq.Client the scheduler needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// ReminderScheduler enqueues one reminder per registration, due lead before
// the registration deadline.
type ReminderScheduler struct {
	client Enqueuer
	lead   time.Duration
	epoch  string
	now    func() time.Time
}

var _ services.ReminderScheduler = (*ReminderScheduler)(nil)

func NewReminderScheduler(client Enqueuer, lead time.Duration) *ReminderScheduler {
	return &ReminderScheduler{client: client, lead: lead, now: time.Now}
}

// WithEpoch scopes task ids and payloads to one store generation. Use it
// when entity ids restart with the process, as with the memory store.
func (s *ReminderScheduler) WithEpoch(epoch string) *ReminderScheduler {
	s.epoch = epoch
	return s
}

func (s *ReminderScheduler) ScheduleDeadlineReminder(ctx context.Context, userID uint, h *models.Hackathon) error {
	task, err := NewDeadlineReminderTask(userID, h.ID, s.epoch)
	if err != nil {
		return err
	}

	at := h.RegistrationDeadline.Add(-s.lead)
	if now := s.now(); at.Before(now) {
		at = now
	}

	info, err := s.client.EnqueueContext(ctx, task,
		asynq.ProcessAt(at),
		asynq.TaskID(reminderTaskID(userID, h.ID, s.epoch)),
		asynq.MaxRetry(3),
	)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("enqueue deadline reminder: %w", err)
	}

	metrics.RemindersScheduled.Inc()
	logger.L().Info("deadline reminder scheduled",
		zap.String("task_id", info.ID), zap.Uint("user_id", userID), zap.Uint("hackathon_id", h.ID), zap.Time("process_at", at))
	return nil
}

// DeadlineReminderHandler turns due reminders into notifications.
type DeadlineReminderHandler struct {
	store         repository.Store
	notifications services.NotificationService
	epoch         string
	now           func() time.Time
}

func NewDeadlineReminderHandler(store repository.Store, notifications services.NotificationService) *DeadlineReminderHandler {
	return &DeadlineReminderHandler{store: store, notifications: notifications, now: time.Now}
}

// WithEpoch makes the handler drop tasks scheduled for another store generation.
func (h *DeadlineReminderHandler) WithEpoch(epoch string) *DeadlineReminderHandler {
	h.epoch = epoch
	return h
}

func (h *DeadlineReminderHandler) HandleDeadlineReminder(ctx context.Context, t *asynq.Task) error {
	var p DeadlineReminderPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		logger.L().Error("invalid deadline reminder payload", zap.Error(err))
		return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
	}

	log := logger.L().With(zap.Uint("user_id", p.UserID), zap.Uint("hackathon_id", p.HackathonID))
	if p.Epoch != h.epoch {
		log.Info("deadline reminder skipped: scheduled for another store generation", zap.String("epoch", p.Epoch))
		return nil
	}

	hack, err := h.store.Hackathons().GetByID(ctx, p.HackathonID)
	if err != nil {
		return err
	}
	if hack == nil {
		log.Warn("deadline reminder skipped: hackathon not found")
		return nil
	}
	reg, err := h.store.Registrations().GetByUserAndHackathon(ctx, p.UserID, p.HackathonID)
	if err != nil {
		return err
	}
	if reg == nil {
		log.Warn("deadline reminder skipped: registration not found")
		return nil
	}
	if !h.now().Before(hack.RegistrationDeadline) {
		log.Info("deadline reminder skipped: deadline already passed")
		return nil
	}

	content := fmt.Sprintf("Registration for %s closes on %s. Make sure your team is ready.",
		hack.Title, hack.RegistrationDeadline.UTC().Format("Jan 2, 2006 15:04 MST"))
	related := hack.ID
	if _, err := h.notifications.Notify(ctx, p.UserID, models.NotificationDeadlineReminder, content, &related); err != nil {
		log.Error("deadline reminder notify failed", zap.Error(err))
		return err
	}

	log.Info("deadline reminder delivered")
	return nil
}

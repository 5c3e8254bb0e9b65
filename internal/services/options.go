package services

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/hackmap/engine/internal/models"
	"github.com/hackmap/engine/pkg/utils"
)

// ReminderScheduler enqueues the deadline reminder for a fresh registration.
type ReminderScheduler interface {
	ScheduleDeadlineReminder(ctx context.Context, userID uint, h *models.Hackathon) error
}

type options struct {
	now          func() time.Time
	inviteCode   func() (string, error)
	reminders    ReminderScheduler
	passwordCost int
}

// Option tunes a service. Unset options use production defaults.
type Option func(*options)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithInviteCodeGenerator replaces the random invite code source.
func WithInviteCodeGenerator(gen func() (string, error)) Option {
	return func(o *options) { o.inviteCode = gen }
}

// WithReminderScheduler enables deadline reminders on registration.
func WithReminderScheduler(s ReminderScheduler) Option {
	return func(o *options) { o.reminders = s }
}

// WithPasswordCost sets the bcrypt cost for new password hashes.
func WithPasswordCost(cost int) Option {
	return func(o *options) { o.passwordCost = cost }
}

func buildOptions(opts []Option) options {
	o := options{
		now: time.Now,
		inviteCode: func() (string, error) {
			return utils.GenerateInviteCode(utils.InviteCodeLength)
		},
		passwordCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

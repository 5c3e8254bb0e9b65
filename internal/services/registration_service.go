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

type RegistrationService interface {
	RegisterUserForHackathon(ctx context.Context, userID, hackathonID uint) (*models.Registration, error)
	// GetRegistrationStatus returns nil when the user has not registered.
	GetRegistrationStatus(ctx context.Context, userID, hackathonID uint) (*models.Registration, error)
	ListRegistrationsForUser(ctx context.Context, userID uint) ([]RegistrationWithHackathon, error)
}

type RegistrationWithHackathon struct {
	models.Registration
	Hackathon *models.Hackathon `json:"hackathon"`
}

type registrationService struct {
	store repository.Store
	opts  options
}

func NewRegistrationService(store repository.Store, opts ...Option) RegistrationService {
	return &registrationService{store: store, opts: buildOptions(opts)}
}

var _ RegistrationService = (*registrationService)(nil)

func (s *registrationService) RegisterUserForHackathon(ctx context.Context, userID, hackathonID uint) (*models.Registration, error) {
	var (
		reg *models.Registration
		h   *models.Hackathon
	)
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		var err error
		h, err = tx.Hackathons().GetByID(ctx, hackathonID)
		if err != nil {
			return err
		}
		if h == nil {
			return appErr.New(appErr.CodeNotFound, "hackathon not found")
		}
		now := s.opts.now()
		if !h.RegistrationOpen(now) {
			return appErr.New(appErr.CodeRegistrationClosed, "registration deadline has passed")
		}
		existing, err := tx.Registrations().GetByUserAndHackathon(ctx, userID, hackathonID)
		if err != nil {
			return err
		}
		if existing != nil {
			return appErr.New(appErr.CodeAlreadyRegistered, "already registered for this hackathon")
		}
		reg = &models.Registration{UserID: userID, HackathonID: hackathonID, RegisteredAt: now}
		return tx.Registrations().Create(ctx, reg)
	})
	if err != nil {
		return nil, err
	}

	metrics.Registrations.Inc()
	logger.L().Info("user registered", zap.Uint("user_id", userID), zap.Uint("hackathon_id", hackathonID))

	if s.opts.reminders != nil {
		if err := s.opts.reminders.ScheduleDeadlineReminder(ctx, userID, h); err != nil {
			logger.L().Warn("schedule deadline reminder failed",
				zap.Uint("user_id", userID), zap.Uint("hackathon_id", hackathonID), zap.Error(err))
		}
	}
	return reg, nil
}

func (s *registrationService) GetRegistrationStatus(ctx context.Context, userID, hackathonID uint) (*models.Registration, error) {
	return s.store.Registrations().GetByUserAndHackathon(ctx, userID, hackathonID)
}

func (s *registrationService) ListRegistrationsForUser(ctx context.Context, userID uint) ([]RegistrationWithHackathon, error) {
	regs, err := s.store.Registrations().ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]RegistrationWithHackathon, 0, len(regs))
	for _, r := range regs {
		h, err := s.store.Hackathons().GetByID(ctx, r.HackathonID)
		if err != nil {
			return nil, err
		}
		out = append(out, RegistrationWithHackathon{Registration: r, Hackathon: h})
	}
	return out, nil
}

package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hackmap/engine/internal/models"
	"github.com/hackmap/engine/internal/repository"
	appErr "github.com/hackmap/engine/pkg/errors"
	"github.com/hackmap/engine/pkg/logger"
	"github.com/hackmap/engine/pkg/utils"
)

// Date filter values accepted by ListHackathons.
const (
	DateThisMonth        = "this-month"
	DateNextMonth        = "next-month"
	DateUpcoming         = "upcoming"
	DateOpenRegistration = "open-registration"
)

// featuredCount is how many hackathons the featured filter keeps.
const featuredCount = 3

type HackathonService interface {
	CreateHackathon(ctx context.Context, input *CreateHackathonInput) (*models.Hackathon, error)
	GetHackathon(ctx context.Context, id uint) (*models.Hackathon, error)
	ListHackathons(ctx context.Context, filters *HackathonFilters) ([]models.Hackathon, error)
}

type CreateHackathonInput struct {
	Title                string
	Description          string
	Theme                string
	StartDate            time.Time
	EndDate              time.Time
	RegistrationDeadline time.Time
	Prizes               string
	Tags                 []string
	ImageURL             string
	Status               string
}

// HackathonFilters narrow a listing. Filters are applied in field order and
// Limit last; zero values disable a filter.
type HackathonFilters struct {
	Featured bool
	Query    string
	Category string
	Date     string
	Tags     []string
	Limit    int
}

type hackathonService struct {
	store repository.Store
	opts  options
}

func NewHackathonService(store repository.Store, opts ...Option) HackathonService {
	return &hackathonService{store: store, opts: buildOptions(opts)}
}

var _ HackathonService = (*hackathonService)(nil)

func (s *hackathonService) CreateHackathon(ctx context.Context, input *CreateHackathonInput) (*models.Hackathon, error) {
	if input.RegistrationDeadline.After(input.StartDate) {
		return nil, appErr.New(appErr.CodeInvalid, "registration deadline must not be after the start date")
	}
	if input.EndDate.Before(input.StartDate) {
		return nil, appErr.New(appErr.CodeInvalid, "end date must not be before the start date")
	}

	status := input.Status
	switch status {
	case "":
		status = models.HackathonStatusUpcoming
	case models.HackathonStatusUpcoming, models.HackathonStatusActive, models.HackathonStatusCompleted:
	default:
		return nil, appErr.New(appErr.CodeInvalid, "unknown hackathon status").WithMeta("status", status)
	}
	h := &models.Hackathon{
		Title:                input.Title,
		Description:          input.Description,
		Theme:                input.Theme,
		StartDate:            input.StartDate,
		EndDate:              input.EndDate,
		RegistrationDeadline: input.RegistrationDeadline,
		Prizes:               input.Prizes,
		Tags:                 input.Tags,
		ImageURL:             input.ImageURL,
		Status:               status,
		CreatedAt:            s.opts.now(),
	}
	if err := s.store.Hackathons().Create(ctx, h); err != nil {
		return nil, err
	}

	logger.L().Info("hackathon created", zap.Uint("hackathon_id", h.ID), zap.String("title", h.Title))
	return h, nil
}

func (s *hackathonService) GetHackathon(ctx context.Context, id uint) (*models.Hackathon, error) {
	h, err := s.store.Hackathons().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, appErr.New(appErr.CodeNotFound, "hackathon not found")
	}
	return h, nil
}

func (s *hackathonService) ListHackathons(ctx context.Context, filters *HackathonFilters) ([]models.Hackathon, error) {
	all, err := s.store.Hackathons().List(ctx)
	if err != nil {
		return nil, err
	}
	if filters == nil {
		return all, nil
	}

	if filters.Featured && len(all) > featuredCount {
		all = all[:featuredCount]
	}

	now := s.opts.now()
	out := make([]models.Hackathon, 0, len(all))
	for _, h := range all {
		if filters.Query != "" && !matchesQuery(&h, filters.Query) {
			continue
		}
		if filters.Category != "" && !matchesCategory(&h, filters.Category) {
			continue
		}
		if filters.Date != "" && !matchesDate(&h, filters.Date, now) {
			continue
		}
		if len(filters.Tags) > 0 && !matchesAnyTag(&h, filters.Tags) {
			continue
		}
		out = append(out, h)
	}

	if filters.Limit > 0 && len(out) > filters.Limit {
		out = out[:filters.Limit]
	}
	return out, nil
}

func matchesQuery(h *models.Hackathon, q string) bool {
	return utils.ContainsFold(h.Title, q) || utils.ContainsFold(h.Description, q) || utils.ContainsFold(h.Theme, q)
}

func matchesCategory(h *models.Hackathon, category string) bool {
	if utils.ContainsFold(h.Theme, category) {
		return true
	}
	for _, tag := range h.Tags {
		if utils.ContainsFold(tag, category) {
			return true
		}
	}
	return false
}

// matchesDate evaluates calendar filters in the clock's location. Unknown
// values match everything.
func matchesDate(h *models.Hackathon, filter string, now time.Time) bool {
	switch filter {
	case DateThisMonth:
		return sameMonth(h.StartDate.In(now.Location()), now)
	case DateNextMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return sameMonth(h.StartDate.In(now.Location()), first.AddDate(0, 1, 0))
	case DateUpcoming:
		return h.StartDate.After(now)
	case DateOpenRegistration:
		return h.RegistrationOpen(now)
	default:
		return true
	}
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

func matchesAnyTag(h *models.Hackathon, wanted []string) bool {
	for _, w := range wanted {
		for _, tag := range h.Tags {
			if strings.TrimSpace(w) != "" && utils.ContainsFold(tag, w) {
				return true
			}
		}
	}
	return false
}

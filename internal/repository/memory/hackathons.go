package memory

import (
	"context"
	"slices"

	"github.com/hackmap/engine/internal/models"
)

type hackathonRepo struct{ scope }

func cloneHackathon(h models.Hackathon) models.Hackathon {
	h.Tags = slices.Clone(h.Tags)
	return h
}

func (r hackathonRepo) Create(ctx context.Context, h *models.Hackathon) error {
	defer r.lock()()
	h.ID = r.s.hackathons.nextID()
	h.CreatedAt = r.stamp(h.CreatedAt)
	row := cloneHackathon(*h)
	r.s.hackathons.put(row.ID, row)
	r.undo(func() { r.s.hackathons.remove(row.ID) })
	return nil
}

func (r hackathonRepo) GetByID(ctx context.Context, id uint) (*models.Hackathon, error) {
	defer r.rlock()()
	h, ok := r.s.hackathons.get(id)
	return ptrOf(cloneHackathon(h), ok), nil
}

func (r hackathonRepo) List(ctx context.Context) ([]models.Hackathon, error) {
	defer r.rlock()()
	return mapRows(r.s.hackathons.all(), cloneHackathon), nil
}

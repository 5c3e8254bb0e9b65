package memory

import (
	"context"

	"github.com/hackmap/engine/internal/models"
	appErr "github.com/hackmap/engine/pkg/errors"
)

type registrationRepo struct{ scope }

func (r registrationRepo) Create(ctx context.Context, reg *models.Registration) error {
	defer r.lock()()
	key := pair{reg.UserID, reg.HackathonID}
	if _, ok := r.s.registrationsByPair[key]; ok {
		return appErr.New(appErr.CodeAlreadyRegistered, "already registered for this hackathon")
	}
	reg.ID = r.s.registrations.nextID()
	reg.RegisteredAt = r.stamp(reg.RegisteredAt)
	row := *reg
	r.s.registrations.put(row.ID, row)
	r.s.registrationsByPair[key] = row.ID
	r.s.registrationsByUser[row.UserID] = append(r.s.registrationsByUser[row.UserID], row.ID)
	r.undo(func() {
		r.s.registrations.remove(row.ID)
		delete(r.s.registrationsByPair, key)
		r.s.registrationsByUser[row.UserID] = removeID(r.s.registrationsByUser[row.UserID], row.ID)
	})
	return nil
}

func (r registrationRepo) GetByUserAndHackathon(ctx context.Context, userID, hackathonID uint) (*models.Registration, error) {
	defer r.rlock()()
	id, ok := r.s.registrationsByPair[pair{userID, hackathonID}]
	if !ok {
		return nil, nil
	}
	reg, ok := r.s.registrations.get(id)
	return ptrOf(reg, ok), nil
}

// LockByUserAndHackathon needs no extra locking: transactions already hold the store lock.
func (r registrationRepo) LockByUserAndHackathon(ctx context.Context, userID, hackathonID uint) (*models.Registration, error) {
	return r.GetByUserAndHackathon(ctx, userID, hackathonID)
}

func (r registrationRepo) ListByUser(ctx context.Context, userID uint) ([]models.Registration, error) {
	defer r.rlock()()
	return r.s.registrations.pick(r.s.registrationsByUser[userID]), nil
}

package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/hackmap/engine/internal/models"
	appErr "github.com/hackmap/engine/pkg/errors"
)

type userRepo struct{ scope }

func cloneUser(u models.User) models.User {
	u.Skills = slices.Clone(u.Skills)
	return u
}

func fold(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// checkUnique reports a conflict with any user other than self.
func (r userRepo) checkUnique(u *models.User, self uint) error {
	if id, ok := r.s.usernames[fold(u.Username)]; ok && id != self {
		return appErr.New(appErr.CodeAlreadyExists, "username already exists")
	}
	if id, ok := r.s.emails[fold(u.Email)]; ok && id != self {
		return appErr.New(appErr.CodeAlreadyExists, "email already exists")
	}
	return nil
}

func (r userRepo) index(u models.User) {
	r.s.usernames[fold(u.Username)] = u.ID
	r.s.emails[fold(u.Email)] = u.ID
}

func (r userRepo) unindex(u models.User) {
	delete(r.s.usernames, fold(u.Username))
	delete(r.s.emails, fold(u.Email))
}

func (r userRepo) Create(ctx context.Context, u *models.User) error {
	defer r.lock()()
	if err := r.checkUnique(u, 0); err != nil {
		return err
	}
	u.ID = r.s.users.nextID()
	u.CreatedAt = r.stamp(u.CreatedAt)
	u.UpdatedAt = u.CreatedAt
	row := cloneUser(*u)
	r.s.users.put(row.ID, row)
	r.index(row)
	r.undo(func() {
		r.s.users.remove(row.ID)
		r.unindex(row)
	})
	return nil
}

func (r userRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	defer r.rlock()()
	u, ok := r.s.users.get(id)
	return ptrOf(cloneUser(u), ok), nil
}

func (r userRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	defer r.rlock()()
	id, ok := r.s.usernames[fold(username)]
	if !ok {
		return nil, nil
	}
	u, ok := r.s.users.get(id)
	return ptrOf(cloneUser(u), ok), nil
}

func (r userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	defer r.rlock()()
	id, ok := r.s.emails[fold(email)]
	if !ok {
		return nil, nil
	}
	u, ok := r.s.users.get(id)
	return ptrOf(cloneUser(u), ok), nil
}

func (r userRepo) Update(ctx context.Context, u *models.User) error {
	defer r.lock()()
	prev, ok := r.s.users.get(u.ID)
	if !ok {
		return appErr.New(appErr.CodeNotFound, "user not found")
	}
	if err := r.checkUnique(u, u.ID); err != nil {
		return err
	}
	u.CreatedAt = prev.CreatedAt
	u.UpdatedAt = r.s.now()
	row := cloneUser(*u)
	r.unindex(prev)
	r.s.users.put(row.ID, row)
	r.index(row)
	r.undo(func() {
		r.unindex(row)
		r.s.users.put(prev.ID, prev)
		r.index(prev)
	})
	return nil
}

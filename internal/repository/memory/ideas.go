package memory

import (
	"context"
	"slices"

	"github.com/hackmap/engine/internal/models"
	appErr "github.com/hackmap/engine/pkg/errors"
)

type ideaRepo struct{ scope }

func cloneIdea(p models.ProjectIdea) models.ProjectIdea {
	p.TechStack = slices.Clone(p.TechStack)
	return p
}

func (r ideaRepo) Create(ctx context.Context, p *models.ProjectIdea) error {
	defer r.lock()()
	p.ID = r.s.ideas.nextID()
	p.CreatedAt = r.stamp(p.CreatedAt)
	row := cloneIdea(*p)
	r.s.ideas.put(row.ID, row)
	r.undo(func() { r.s.ideas.remove(row.ID) })
	return nil
}

func (r ideaRepo) GetByID(ctx context.Context, id uint) (*models.ProjectIdea, error) {
	defer r.rlock()()
	p, ok := r.s.ideas.get(id)
	return ptrOf(cloneIdea(p), ok), nil
}

func (r ideaRepo) List(ctx context.Context) ([]models.ProjectIdea, error) {
	defer r.rlock()()
	return mapRows(r.s.ideas.all(), cloneIdea), nil
}

type commentRepo struct{ scope }

func (r commentRepo) Create(ctx context.Context, c *models.Comment) error {
	defer r.lock()()
	c.ID = r.s.comments.nextID()
	c.CreatedAt = r.stamp(c.CreatedAt)
	row := *c
	r.s.comments.put(row.ID, row)
	r.s.commentsByProject[row.ProjectID] = append(r.s.commentsByProject[row.ProjectID], row.ID)
	r.undo(func() {
		r.s.comments.remove(row.ID)
		r.s.commentsByProject[row.ProjectID] = removeID(r.s.commentsByProject[row.ProjectID], row.ID)
	})
	return nil
}

func (r commentRepo) ListByProject(ctx context.Context, projectID uint) ([]models.Comment, error) {
	defer r.rlock()()
	return r.s.comments.pick(r.s.commentsByProject[projectID]), nil
}

func (r commentRepo) CountByProject(ctx context.Context, projectID uint) (int, error) {
	defer r.rlock()()
	return len(r.s.commentsByProject[projectID]), nil
}

type endorsementRepo struct{ scope }

func (r endorsementRepo) Create(ctx context.Context, e *models.Endorsement) error {
	defer r.lock()()
	key := pair{e.ProjectID, e.UserID}
	if _, ok := r.s.endorsementsByPair[key]; ok {
		return appErr.New(appErr.CodeAlreadyEndorsed, "already endorsed this idea")
	}
	e.ID = r.s.endorsements.nextID()
	e.CreatedAt = r.stamp(e.CreatedAt)
	row := *e
	r.s.endorsements.put(row.ID, row)
	r.s.endorsementsByPair[key] = row.ID
	r.s.endorsementCounts[row.ProjectID]++
	r.undo(func() { r.drop(key, row) })
	return nil
}

func (r endorsementRepo) drop(key pair, row models.Endorsement) {
	r.s.endorsements.remove(row.ID)
	delete(r.s.endorsementsByPair, key)
	if r.s.endorsementCounts[row.ProjectID]--; r.s.endorsementCounts[row.ProjectID] <= 0 {
		delete(r.s.endorsementCounts, row.ProjectID)
	}
}

func (r endorsementRepo) Delete(ctx context.Context, projectID, userID uint) (bool, error) {
	defer r.lock()()
	key := pair{projectID, userID}
	id, ok := r.s.endorsementsByPair[key]
	if !ok {
		return false, nil
	}
	row, _ := r.s.endorsements.get(id)
	r.drop(key, row)
	r.undo(func() {
		r.s.endorsements.put(row.ID, row)
		r.s.endorsementsByPair[key] = row.ID
		r.s.endorsementCounts[row.ProjectID]++
	})
	return true, nil
}

func (r endorsementRepo) Exists(ctx context.Context, projectID, userID uint) (bool, error) {
	defer r.rlock()()
	_, ok := r.s.endorsementsByPair[pair{projectID, userID}]
	return ok, nil
}

func (r endorsementRepo) CountByProject(ctx context.Context, projectID uint) (int, error) {
	defer r.rlock()()
	return r.s.endorsementCounts[projectID], nil
}

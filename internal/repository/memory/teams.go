package memory

import (
	"context"
	"slices"

	"github.com/hackmap/engine/internal/models"
	appErr "github.com/hackmap/engine/pkg/errors"
)

type teamRepo struct{ scope }

func cloneTeam(t models.Team) models.Team {
	t.RequiredSkills = slices.Clone(t.RequiredSkills)
	return t
}

func (r teamRepo) Create(ctx context.Context, t *models.Team) error {
	defer r.lock()()
	if _, ok := r.s.teamsByCode[t.InviteCode]; ok {
		return appErr.New(appErr.CodeAlreadyExists, "invite code already in use")
	}
	t.ID = r.s.teams.nextID()
	t.CreatedAt = r.stamp(t.CreatedAt)
	row := cloneTeam(*t)
	r.s.teams.put(row.ID, row)
	r.s.teamsByCode[row.InviteCode] = row.ID
	r.s.teamsByHackathon[row.HackathonID] = append(r.s.teamsByHackathon[row.HackathonID], row.ID)
	r.undo(func() {
		r.s.teams.remove(row.ID)
		delete(r.s.teamsByCode, row.InviteCode)
		r.s.teamsByHackathon[row.HackathonID] = removeID(r.s.teamsByHackathon[row.HackathonID], row.ID)
	})
	return nil
}

func (r teamRepo) GetByID(ctx context.Context, id uint) (*models.Team, error) {
	defer r.rlock()()
	t, ok := r.s.teams.get(id)
	return ptrOf(cloneTeam(t), ok), nil
}

func (r teamRepo) LockByID(ctx context.Context, id uint) (*models.Team, error) {
	return r.GetByID(ctx, id)
}

func (r teamRepo) List(ctx context.Context) ([]models.Team, error) {
	defer r.rlock()()
	return mapRows(r.s.teams.all(), cloneTeam), nil
}

func (r teamRepo) ListByHackathon(ctx context.Context, hackathonID uint) ([]models.Team, error) {
	defer r.rlock()()
	return mapRows(r.s.teams.pick(r.s.teamsByHackathon[hackathonID]), cloneTeam), nil
}

func (r teamRepo) ListByMember(ctx context.Context, userID uint) ([]models.Team, error) {
	defer r.rlock()()
	var ids []uint
	for _, m := range r.s.members.pick(r.s.membersByUser[userID]) {
		if m.Accepted() {
			ids = append(ids, m.TeamID)
		}
	}
	slices.Sort(ids)
	return mapRows(r.s.teams.pick(ids), cloneTeam), nil
}

type memberRepo struct{ scope }

func cloneMember(m models.TeamMember) models.TeamMember {
	m.JoinedAt = copyPtr(m.JoinedAt)
	return m
}

func (r memberRepo) Create(ctx context.Context, m *models.TeamMember) error {
	defer r.lock()()
	key := pair{m.TeamID, m.UserID}
	if _, ok := r.s.membersByPair[key]; ok {
		return appErr.New(appErr.CodeAlreadyMember, "already a member of this team")
	}
	m.ID = r.s.members.nextID()
	row := cloneMember(*m)
	r.s.members.put(row.ID, row)
	r.s.membersByPair[key] = row.ID
	r.s.membersByTeam[row.TeamID] = append(r.s.membersByTeam[row.TeamID], row.ID)
	r.s.membersByUser[row.UserID] = append(r.s.membersByUser[row.UserID], row.ID)
	r.undo(func() {
		r.s.members.remove(row.ID)
		delete(r.s.membersByPair, key)
		r.s.membersByTeam[row.TeamID] = removeID(r.s.membersByTeam[row.TeamID], row.ID)
		r.s.membersByUser[row.UserID] = removeID(r.s.membersByUser[row.UserID], row.ID)
	})
	return nil
}

func (r memberRepo) GetByTeamAndUser(ctx context.Context, teamID, userID uint) (*models.TeamMember, error) {
	defer r.rlock()()
	id, ok := r.s.membersByPair[pair{teamID, userID}]
	if !ok {
		return nil, nil
	}
	m, ok := r.s.members.get(id)
	return ptrOf(cloneMember(m), ok), nil
}

func (r memberRepo) ListByTeam(ctx context.Context, teamID uint) ([]models.TeamMember, error) {
	defer r.rlock()()
	return mapRows(r.s.members.pick(r.s.membersByTeam[teamID]), cloneMember), nil
}

func (r memberRepo) CountAccepted(ctx context.Context, teamID uint) (int, error) {
	defer r.rlock()()
	n := 0
	for _, m := range r.s.members.pick(r.s.membersByTeam[teamID]) {
		if m.Accepted() {
			n++
		}
	}
	return n, nil
}

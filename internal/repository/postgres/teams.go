package postgres

import (
	"context"

	"github.com/hackmap/engine/internal/models"
	"gorm.io/gorm/clause"
)

type teamRepo struct {
	baseRepository[models.Team]
}

func (r teamRepo) Create(ctx context.Context, t *models.Team) error {
	return r.create(ctx, t)
}

func (r teamRepo) GetByID(ctx context.Context, id uint) (*models.Team, error) {
	return r.getByID(ctx, id)
}

// LockByID serializes joins on one team for the rest of the transaction.
func (r teamRepo) LockByID(ctx context.Context, id uint) (*models.Team, error) {
	return r.first(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id))
}

func (r teamRepo) List(ctx context.Context) ([]models.Team, error) {
	return r.find(r.db.WithContext(ctx).Order("id"))
}

func (r teamRepo) ListByHackathon(ctx context.Context, hackathonID uint) ([]models.Team, error) {
	return r.find(r.db.WithContext(ctx).Where("hackathon_id = ?", hackathonID).Order("id"))
}

func (r teamRepo) ListByMember(ctx context.Context, userID uint) ([]models.Team, error) {
	return r.find(r.db.WithContext(ctx).
		Joins("JOIN team_members ON team_members.team_id = teams.id").
		Where("team_members.user_id = ? AND team_members.status = ?", userID, models.MemberStatusAccepted).
		Order("teams.id"))
}

type memberRepo struct {
	baseRepository[models.TeamMember]
}

func (r memberRepo) Create(ctx context.Context, m *models.TeamMember) error {
	return r.create(ctx, m)
}

func (r memberRepo) GetByTeamAndUser(ctx context.Context, teamID, userID uint) (*models.TeamMember, error) {
	return r.first(r.db.WithContext(ctx).Where("team_id = ? AND user_id = ?", teamID, userID))
}

func (r memberRepo) ListByTeam(ctx context.Context, teamID uint) ([]models.TeamMember, error) {
	return r.find(r.db.WithContext(ctx).Where("team_id = ?", teamID).Order("id"))
}

func (r memberRepo) CountAccepted(ctx context.Context, teamID uint) (int, error) {
	return r.count(r.db.WithContext(ctx).Where("team_id = ? AND status = ?", teamID, models.MemberStatusAccepted))
}

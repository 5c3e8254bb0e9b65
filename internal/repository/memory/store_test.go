package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackmap/engine/internal/models"
	"github.com/hackmap/engine/internal/repository"
	appErr "github.com/hackmap/engine/pkg/errors"
)

func TestIDsArePerTypeAndMonotonic(t *testing.T) {
	ctx := context.Background()
	s := New()

	for i := 1; i <= 3; i++ {
		h := &models.Hackathon{Title: "h"}
		require.NoError(t, s.Hackathons().Create(ctx, h))
		assert.Equal(t, uint(i), h.ID)
	}
	team := &models.Team{HackathonID: 1, InviteCode: "AAAAAAAA"}
	require.NoError(t, s.Teams().Create(ctx, team))
	assert.Equal(t, uint(1), team.ID, "each entity type has its own counter")
}

func TestGetAbsentReturnsNil(t *testing.T) {
	ctx := context.Background()
	s := New()

	u, err := s.Users().GetByID(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, u)

	reg, err := s.Registrations().GetByUserAndHackathon(ctx, 1, 1)
	require.NoError(t, err)
	assert.Nil(t, reg)
}

func TestUserUniquenessIgnoresCase(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.Users().Create(ctx, &models.User{Username: "Ada", Email: "ada@example.com"}))

	err := s.Users().Create(ctx, &models.User{Username: "ADA", Email: "other@example.com"})
	assert.True(t, appErr.IsCode(err, appErr.CodeAlreadyExists))

	err = s.Users().Create(ctx, &models.User{Username: "grace", Email: "ADA@example.com"})
	assert.True(t, appErr.IsCode(err, appErr.CodeAlreadyExists))

	u, err := s.Users().GetByUsername(ctx, "aDa")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, uint(1), u.ID)
}

func TestUserUpdateKeepsIdentity(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := New()

	u := &models.User{Username: "ada", Email: "ada@example.com", CreatedAt: created}
	require.NoError(t, s.Users().Create(ctx, u))

	u.Username = "lovelace"
	u.CreatedAt = time.Now()
	require.NoError(t, s.Users().Update(ctx, u))

	got, err := s.Users().GetByUsername(ctx, "lovelace")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created, got.CreatedAt)

	old, err := s.Users().GetByUsername(ctx, "ada")
	require.NoError(t, err)
	assert.Nil(t, old, "old username index entry is released")

	err = s.Users().Update(ctx, &models.User{ID: 99})
	assert.True(t, appErr.IsCode(err, appErr.CodeNotFound))
}

func TestReturnedRowsDoNotAliasStore(t *testing.T) {
	ctx := context.Background()
	s := New()

	skills := []string{"Go"}
	u := &models.User{Username: "ada", Email: "a@x.io", Skills: skills}
	require.NoError(t, s.Users().Create(ctx, u))
	skills[0] = "mutated"

	got, err := s.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	got.Skills[0] = "also mutated"

	again, err := s.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, []string(again.Skills))
}

func TestCompositeUniqueness(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.Registrations().Create(ctx, &models.Registration{UserID: 1, HackathonID: 1}))
	err := s.Registrations().Create(ctx, &models.Registration{UserID: 1, HackathonID: 1})
	assert.True(t, appErr.IsCode(err, appErr.CodeAlreadyRegistered))
	regs, err := s.Registrations().ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, regs, 1)

	require.NoError(t, s.TeamMembers().Create(ctx, &models.TeamMember{TeamID: 1, UserID: 2, Status: models.MemberStatusDeclined}))
	err = s.TeamMembers().Create(ctx, &models.TeamMember{TeamID: 1, UserID: 2, Status: models.MemberStatusAccepted})
	assert.True(t, appErr.IsCode(err, appErr.CodeAlreadyMember))

	require.NoError(t, s.Endorsements().Create(ctx, &models.Endorsement{ProjectID: 1, UserID: 2}))
	err = s.Endorsements().Create(ctx, &models.Endorsement{ProjectID: 1, UserID: 2})
	assert.True(t, appErr.IsCode(err, appErr.CodeAlreadyEndorsed))

	require.NoError(t, s.Teams().Create(ctx, &models.Team{InviteCode: "ABC12345"}))
	err = s.Teams().Create(ctx, &models.Team{InviteCode: "ABC12345"})
	assert.True(t, appErr.IsCode(err, appErr.CodeAlreadyExists))
}

func TestConcurrentDuplicateRegistrationsYieldOneRow(t *testing.T) {
	ctx := context.Background()
	s := New()

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.Registrations().Create(ctx, &models.Registration{UserID: 7, HackathonID: 3}); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	regs, err := s.Registrations().ListByUser(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, regs, 1)
}

func TestListByMemberOnlyAccepted(t *testing.T) {
	ctx := context.Background()
	s := New()

	for _, code := range []string{"AAAAAAAA", "BBBBBBBB", "CCCCCCCC"} {
		require.NoError(t, s.Teams().Create(ctx, &models.Team{InviteCode: code, HackathonID: 1}))
	}
	require.NoError(t, s.TeamMembers().Create(ctx, &models.TeamMember{TeamID: 3, UserID: 9, Status: models.MemberStatusAccepted}))
	require.NoError(t, s.TeamMembers().Create(ctx, &models.TeamMember{TeamID: 1, UserID: 9, Status: models.MemberStatusAccepted}))
	require.NoError(t, s.TeamMembers().Create(ctx, &models.TeamMember{TeamID: 2, UserID: 9, Status: models.MemberStatusInvited}))

	teams, err := s.Teams().ListByMember(ctx, 9)
	require.NoError(t, err)
	require.Len(t, teams, 2)
	assert.Equal(t, uint(1), teams[0].ID)
	assert.Equal(t, uint(3), teams[1].ID)

	n, err := s.TeamMembers().CountAccepted(ctx, 2)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestEndorsementDeleteAndCount(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.Endorsements().Create(ctx, &models.Endorsement{ProjectID: 5, UserID: 1}))
	require.NoError(t, s.Endorsements().Create(ctx, &models.Endorsement{ProjectID: 5, UserID: 2}))

	n, err := s.Endorsements().CountByProject(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	removed, err := s.Endorsements().Delete(ctx, 5, 1)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = s.Endorsements().Delete(ctx, 5, 1)
	require.NoError(t, err)
	assert.False(t, removed)

	n, err = s.Endorsements().CountByProject(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	ok, err := s.Endorsements().Exists(ctx, 5, 2)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNotificationsNewestFirst(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := New()

	for _, offset := range []time.Duration{time.Minute, 0, 2 * time.Minute, time.Minute} {
		require.NoError(t, s.Notifications().Create(ctx, &models.Notification{UserID: 1, Type: "t", CreatedAt: base.Add(offset)}))
	}
	require.NoError(t, s.Notifications().Create(ctx, &models.Notification{UserID: 2, Type: "t", CreatedAt: base}))

	list, err := s.Notifications().ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 4)
	ids := []uint{list[0].ID, list[1].ID, list[2].ID, list[3].ID}
	assert.Equal(t, []uint{3, 4, 1, 2}, ids)
	for i := 1; i < len(list); i++ {
		assert.False(t, list[i].CreatedAt.After(list[i-1].CreatedAt))
	}

	require.NoError(t, s.Notifications().MarkRead(ctx, 3))
	require.NoError(t, s.Notifications().MarkRead(ctx, 3))
	unread, err := s.Notifications().CountUnread(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, unread)

	err = s.Notifications().MarkRead(ctx, 404)
	assert.True(t, appErr.IsCode(err, appErr.CodeNotFound))
}

func TestWithinTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := New()
	boom := errors.New("boom")

	err := s.WithinTx(ctx, func(tx repository.Store) error {
		team := &models.Team{InviteCode: "ROLLBACK", HackathonID: 1}
		if err := tx.Teams().Create(ctx, team); err != nil {
			return err
		}
		if err := tx.TeamMembers().Create(ctx, &models.TeamMember{TeamID: team.ID, UserID: 1, Status: models.MemberStatusAccepted}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	teams, err := s.Teams().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, teams)
	member, err := s.TeamMembers().GetByTeamAndUser(ctx, 1, 1)
	require.NoError(t, err)
	assert.Nil(t, member)

	// the invite code is free again and ids are not reused
	team := &models.Team{InviteCode: "ROLLBACK", HackathonID: 1}
	require.NoError(t, s.Teams().Create(ctx, team))
	assert.Equal(t, uint(2), team.ID)
}

func TestWithinTxNests(t *testing.T) {
	ctx := context.Background()
	s := New()

	err := s.WithinTx(ctx, func(tx repository.Store) error {
		return tx.WithinTx(ctx, func(inner repository.Store) error {
			return inner.Hackathons().Create(ctx, &models.Hackathon{Title: "nested"})
		})
	})
	require.NoError(t, err)

	list, err := s.Hackathons().List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestClockStampsMissingTimestamps(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	s := New(WithClock(func() time.Time { return fixed }))

	reg := &models.Registration{UserID: 1, HackathonID: 1}
	require.NoError(t, s.Registrations().Create(ctx, reg))
	assert.Equal(t, fixed, reg.RegisteredAt)
}

package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackmap/engine/internal/models"
	appErr "github.com/hackmap/engine/pkg/errors"
)

func TestCreateHackathonValidatesDates(t *testing.T) {
	f := newFixture(t)
	now := f.clock.now()

	_, err := f.hackathons.CreateHackathon(f.ctx, &CreateHackathonInput{
		Title:                "late deadline",
		StartDate:            now.Add(24 * time.Hour),
		EndDate:              now.Add(48 * time.Hour),
		RegistrationDeadline: now.Add(36 * time.Hour),
	})
	assert.True(t, appErr.IsCode(err, appErr.CodeInvalid))

	_, err = f.hackathons.CreateHackathon(f.ctx, &CreateHackathonInput{
		Title:                "backwards",
		StartDate:            now.Add(48 * time.Hour),
		EndDate:              now.Add(24 * time.Hour),
		RegistrationDeadline: now,
	})
	assert.True(t, appErr.IsCode(err, appErr.CodeInvalid))

	h := f.hackathon(t, "fine")
	assert.Equal(t, models.HackathonStatusUpcoming, h.Status)

	_, err = f.hackathons.GetHackathon(f.ctx, 404)
	assert.True(t, appErr.IsCode(err, appErr.CodeNotFound))
}

func TestListHackathonFilters(t *testing.T) {
	f := newFixture(t)
	now := f.clock.now() // 2026-10-15

	mk := func(title, theme string, start time.Time, tags ...string) {
		_, err := f.hackathons.CreateHackathon(f.ctx, &CreateHackathonInput{
			Title:                title,
			Description:          title + " event",
			Theme:                theme,
			StartDate:            start,
			EndDate:              start.Add(48 * time.Hour),
			RegistrationDeadline: start.Add(-24 * time.Hour),
			Tags:                 tags,
		})
		require.NoError(t, err)
	}
	mk("AI Summit", "Artificial Intelligence", now.Add(5*24*time.Hour), "AI/ML", "Data Science")
	mk("Web3 Challenge", "Blockchain", time.Date(2026, 11, 10, 0, 0, 0, 0, time.UTC), "Web3")
	mk("HealthTech", "Healthcare", time.Date(2026, 12, 5, 0, 0, 0, 0, time.UTC), "HealthTech")
	mk("Retro Jam", "Games", now.Add(-10*24*time.Hour), "Games")

	titles := func(filters *HackathonFilters) []string {
		list, err := f.hackathons.ListHackathons(f.ctx, filters)
		require.NoError(t, err)
		out := make([]string, 0, len(list))
		for _, h := range list {
			out = append(out, h.Title)
		}
		return out
	}

	assert.Len(t, titles(nil), 4)
	assert.Equal(t, []string{"AI Summit", "Web3 Challenge", "HealthTech"}, titles(&HackathonFilters{Featured: true}))
	assert.Equal(t, []string{"Web3 Challenge"}, titles(&HackathonFilters{Query: "web3"}))
	assert.Equal(t, []string{"AI Summit"}, titles(&HackathonFilters{Category: "data"}))
	assert.Equal(t, []string{"AI Summit", "Retro Jam"}, titles(&HackathonFilters{Date: DateThisMonth}))
	assert.Equal(t, []string{"Web3 Challenge"}, titles(&HackathonFilters{Date: DateNextMonth}))
	assert.Equal(t, []string{"AI Summit", "Web3 Challenge", "HealthTech"}, titles(&HackathonFilters{Date: DateUpcoming}))
	assert.Equal(t, []string{"AI Summit", "Web3 Challenge", "HealthTech"}, titles(&HackathonFilters{Date: DateOpenRegistration}))
	assert.Equal(t, []string{"Web3 Challenge", "HealthTech"}, titles(&HackathonFilters{Tags: []string{"web", "health"}}))
	assert.Equal(t, []string{"AI Summit"}, titles(&HackathonFilters{Limit: 1}))
	assert.Empty(t, titles(&HackathonFilters{Query: "nothing matches"}))
}

func TestOpenRegistrationIncludesDeadlineInstant(t *testing.T) {
	f := newFixture(t)
	h := f.hackathon(t, "closing")

	f.clock.advance(h.RegistrationDeadline.Sub(f.clock.now()))
	require.True(t, h.RegistrationOpen(f.clock.now()))

	list, err := f.hackathons.ListHackathons(f.ctx, &HackathonFilters{Date: DateOpenRegistration})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, h.ID, list[0].ID)

	f.clock.advance(time.Second)
	list, err = f.hackathons.ListHackathons(f.ctx, &HackathonFilters{Date: DateOpenRegistration})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreateHackathonStatus(t *testing.T) {
	f := newFixture(t)
	now := f.clock.now()
	input := func(status string) *CreateHackathonInput {
		return &CreateHackathonInput{
			Title:                "status " + status,
			StartDate:            now.Add(48 * time.Hour),
			EndDate:              now.Add(72 * time.Hour),
			RegistrationDeadline: now.Add(24 * time.Hour),
			Status:               status,
		}
	}

	h, err := f.hackathons.CreateHackathon(f.ctx, input(models.HackathonStatusActive))
	require.NoError(t, err)
	assert.Equal(t, models.HackathonStatusActive, h.Status)

	_, err = f.hackathons.CreateHackathon(f.ctx, input("archived"))
	assert.True(t, appErr.IsCode(err, appErr.CodeInvalid))

	list, err := f.hackathons.ListHackathons(f.ctx, nil)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

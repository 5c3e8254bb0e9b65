// Package seed inserts sample hackathons for local development.
package seed

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/hackmap/engine/internal/services"
	"github.com/hackmap/engine/pkg/logger"
)

const day = 24 * time.Hour

// SampleHackathons returns three upcoming events placed relative to now so
// their registration stays open for a few weeks.
func SampleHackathons(now time.Time) []services.CreateHackathonInput {
	base := now.Truncate(day)
	return []services.CreateHackathonInput{
		{
			Title:                "AI Summit Hackathon",
			Description:          "Build innovative solutions using artificial intelligence and machine learning.",
			Theme:                "Artificial Intelligence",
			RegistrationDeadline: base.Add(15 * day),
			StartDate:            base.Add(30 * day),
			EndDate:              base.Add(32 * day),
			Prizes:               "$5,000 in prizes",
			Tags:                 []string{"AI/ML", "Data Science"},
			ImageURL:             "https://images.unsplash.com/photo-1504384308090-c894fdcc538d",
		},
		{
			Title:                "Web3 Innovation Challenge",
			Description:          "Create decentralized applications that solve real-world problems.",
			Theme:                "Blockchain",
			RegistrationDeadline: base.Add(40 * day),
			StartDate:            base.Add(56 * day),
			EndDate:              base.Add(58 * day),
			Prizes:               "$3,000 in prizes",
			Tags:                 []string{"Web3", "Blockchain"},
			ImageURL:             "https://images.unsplash.com/photo-1517245386807-bb43f82c33c4",
		},
		{
			Title:                "HealthTech Hackathon",
			Description:          "Develop solutions that address challenges in healthcare delivery and patient care.",
			Theme:                "Healthcare",
			RegistrationDeadline: base.Add(66 * day),
			StartDate:            base.Add(81 * day),
			EndDate:              base.Add(83 * day),
			Prizes:               "$2,500 in prizes",
			Tags:                 []string{"Healthcare", "HealthTech"},
			ImageURL:             "https://images.unsplash.com/photo-1498050108023-c5249f4df085",
		},
	}
}

// Run inserts the sample hackathons unless some already exist.
func Run(ctx context.Context, svc services.HackathonService, now time.Time) error {
	existing, err := svc.ListHackathons(ctx, nil)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		logger.L().Info("hackathons already exist, skipping seed", zap.Int("count", len(existing)))
		return nil
	}

	for _, in := range SampleHackathons(now) {
		if _, err := svc.CreateHackathon(ctx, &in); err != nil {
			return err
		}
	}
	logger.L().Info("sample hackathons inserted")
	return nil
}

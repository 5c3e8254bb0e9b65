package postgres

import (
	"fmt"

	"github.com/hackmap/engine/internal/models"
	"gorm.io/gorm"
)

// Models lists every table the store owns, in dependency order.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Hackathon{},
		&models.Registration{},
		&models.Team{},
		&models.TeamMember{},
		&models.ProjectIdea{},
		&models.Comment{},
		&models.Endorsement{},
		&models.Notification{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return runCustomMigrations(db)
}

// runCustomMigrations handles what AutoMigrate can't express
func runCustomMigrations(db *gorm.DB) error {
	migrations := []func(*gorm.DB) error{
		addCaseInsensitiveUserIndexes,
	}
	for _, migration := range migrations {
		if err := migration(db); err != nil {
			return err
		}
	}
	return nil
}

// usernames and emails are unique regardless of case
func addCaseInsensitiveUserIndexes(db *gorm.DB) error {
	stmts := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username_lower ON users (lower(username))`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_lower ON users (lower(email))`,
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("user indexes: %w", err)
		}
	}
	return nil
}

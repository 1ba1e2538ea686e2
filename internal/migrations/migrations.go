package migrations

import (
	"context"
	"errors"
	"fmt"

	"github.com/poolcraft/backoffice/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// BcryptCost is used for every stored password.
const BcryptCost = 12

// RegisterModels returns all models that need migration, parents first.
func RegisterModels() []interface{} {
	return []interface{}{
		// Accounts
		&models.User{},

		// Projects & leads
		&models.Project{},
		&models.ProjectUpdate{},
		&models.Contact{},

		// Professional info content
		&models.ProfessionalInfoPage{},
		&models.ContentSection{},
		&models.ContentMedia{},
		&models.ContentCategory{},
		&models.ContentTag{},
		&models.PageTag{},
		&models.PageCategory{},
	}
}

// Run executes all database migrations.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(RegisterModels()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return runCustomMigrations(db)
}

// runCustomMigrations handles schema changes AutoMigrate can't handle
func runCustomMigrations(db *gorm.DB) error {
	migrations := []func(*gorm.DB) error{
		addDocumentIndexes,
		addStatusChecks,
	}
	for _, migration := range migrations {
		if err := migration(db); err != nil {
			return err
		}
	}
	return nil
}

// addDocumentIndexes adds GIN indexes for the containment and key-existence
// operators used by project search.
func addDocumentIndexes(db *gorm.DB) error {
	stmts := []string{
		`CREATE INDEX IF NOT EXISTS idx_projects_specifications ON projects USING GIN (specifications)`,
		`CREATE INDEX IF NOT EXISTS idx_projects_notes ON projects USING GIN (notes)`,
		`CREATE INDEX IF NOT EXISTS idx_projects_public_listing ON projects (featured DESC, created_at DESC) WHERE is_public`,
	}
	for _, s := range stmts {
		if err := db.Exec(s).Error; err != nil {
			return fmt.Errorf("document indexes: %w", err)
		}
	}
	return nil
}

func addStatusChecks(db *gorm.DB) error {
	checks := map[string]string{
		"chk_projects_status": `ALTER TABLE projects ADD CONSTRAINT chk_projects_status
			CHECK (status IN ('pending', 'in_progress', 'completed', 'cancelled'))`,
		"chk_contacts_status": `ALTER TABLE contacts ADD CONSTRAINT chk_contacts_status
			CHECK (status IN ('new', 'contacted', 'qualified', 'converted'))`,
	}
	for name, stmt := range checks {
		var n int64
		if err := db.Raw(`SELECT COUNT(*) FROM pg_constraint WHERE conname = ?`, name).Scan(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			continue
		}
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// SeedAdmin creates an admin account unless a user with email already
// exists. It reports whether a user was created.
func SeedAdmin(ctx context.Context, db *gorm.DB, email, password, name string) (bool, error) {
	email = models.NormalizeEmail(email)
	var existing models.User
	err := db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return false, err
	}
	u := models.User{Email: email, Password: string(hash), Name: name, Role: models.RoleAdmin, IsActive: true}
	if err := db.WithContext(ctx).Create(&u).Error; err != nil {
		return false, err
	}
	return true, nil
}

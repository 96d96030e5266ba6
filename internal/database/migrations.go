package database

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yukikurage/project-management-api/internal/logging"
	"github.com/yukikurage/project-management-api/internal/models"
)

// AddIndexes adds the indexes used by the access predicates and task ordering.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		model   interface{}
		table   string
		name    string
		columns string
	}{
		// Member-scope subquery: project_members by user
		{&models.ProjectMember{}, "project_members", "idx_project_members_user_id", "user_id"},

		// Owner-scope predicate
		{&models.Project{}, "projects", "idx_projects_owner_id", "owner_id"},

		// Task listing in insertion order
		{&models.Task{}, "tasks", "idx_tasks_project_added", "project_id, added_time"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.model, idx.name) {
			logging.Logger.WithField("index", idx.name).Debug("Index already exists, skipping")
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		logging.Logger.WithField("index", idx.name).Infof("Created index on %s(%s)", idx.table, idx.columns)
	}

	return nil
}

// SeedRoles inserts the fixed roles. Running it again is a no-op.
func SeedRoles(db *gorm.DB) error {
	roles := []models.Role{
		{Name: models.RoleAdmin},
		{Name: models.RoleUser},
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&roles).Error
}

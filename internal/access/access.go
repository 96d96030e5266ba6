// Package access holds the predicates that decide which projects and tasks a
// user may reach. Every scoped read and write in the repositories composes one
// of these into its own statement, so the check and the access happen together.
package access

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yukikurage/project-management-api/internal/models"
)

type Level int

const (
	// Member grants reading a project, its tasks and members, and toggling task completion.
	Member Level = iota + 1
	// Owner grants everything else: editing, deleting, task management and adding members.
	Owner
)

func (l Level) String() string {
	switch l {
	case Member:
		return "member"
	case Owner:
		return "owner"
	}
	return "unknown"
}

// Projects restricts a query on the projects table to rows userID reaches at level.
func Projects(userID uuid.UUID, level Level) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if level == Owner {
			return db.Where("projects.owner_id = ?", userID)
		}
		return db.Where("projects.id IN (?)", memberProjectIDs(db, userID))
	}
}

// ProjectTasks restricts a query on the tasks table to tasks of projects userID reaches at level.
func ProjectTasks(userID uuid.UUID, level Level) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if level == Owner {
			return db.Where("tasks.project_id IN (?)", ownedProjectIDs(db, userID))
		}
		return db.Where("tasks.project_id IN (?)", memberProjectIDs(db, userID))
	}
}

func memberProjectIDs(db *gorm.DB, userID uuid.UUID) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true}).
		Model(&models.ProjectMember{}).
		Select("project_members.project_id").
		Where("project_members.user_id = ?", userID)
}

func ownedProjectIDs(db *gorm.DB, userID uuid.UUID) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true}).
		Model(&models.Project{}).
		Select("projects.id").
		Where("projects.owner_id = ?", userID)
}

// Checker answers standalone access questions for operations that cannot fold
// the predicate into their own statement, such as inserts.
type Checker struct {
	db *gorm.DB
}

func NewChecker(db *gorm.DB) *Checker {
	return &Checker{db: db}
}

// Allows reports whether userID reaches projectID at level. An unknown project reports false.
func (c *Checker) Allows(ctx context.Context, userID, projectID uuid.UUID, level Level) (bool, error) {
	var count int64
	err := c.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("projects.id = ?", projectID).
		Scopes(Projects(userID, level)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (c *Checker) IsMember(ctx context.Context, userID, projectID uuid.UUID) (bool, error) {
	return c.Allows(ctx, userID, projectID, Member)
}

func (c *Checker) IsOwner(ctx context.Context, userID, projectID uuid.UUID) (bool, error) {
	return c.Allows(ctx, userID, projectID, Owner)
}

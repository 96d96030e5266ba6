package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yukikurage/project-management-api/internal/access"
	"github.com/yukikurage/project-management-api/internal/models"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// CreateWithOwner creates the project and the owner's membership atomically.
func (r *GormProjectRepository) CreateWithOwner(ctx context.Context, project *models.Project, owner *models.ProjectMember) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(project).Error; err != nil {
			return err
		}

		owner.ProjectID = project.ID
		owner.UserID = project.OwnerID

		return tx.Omit(clause.Associations).Create(owner).Error
	})
}

func (r *GormProjectRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).
		Scopes(access.Projects(userID, access.Member)).
		Order("projects.name ASC, projects.id ASC").
		Find(&projects).Error
	return projects, err
}

func (r *GormProjectRepository) FindForUser(ctx context.Context, projectID, userID uuid.UUID, level access.Level) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("tasks.added_time ASC, tasks.id ASC")
		}).
		Where("projects.id = ?", projectID).
		Scopes(access.Projects(userID, level)).
		First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *GormProjectRepository) UpdateFields(ctx context.Context, projectID, userID uuid.UUID, fields ProjectFields) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("projects.id = ?", projectID).
		Scopes(access.Projects(userID, access.Owner)).
		Updates(map[string]interface{}{
			"name":        fields.Name,
			"description": fields.Description,
		})
	return result.RowsAffected, result.Error
}

func (r *GormProjectRepository) UpdateStatus(ctx context.Context, projectID, userID uuid.UUID, status models.ProjectStatus) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("projects.id = ?", projectID).
		Scopes(access.Projects(userID, access.Owner)).
		Update("status", status)
	return result.RowsAffected, result.Error
}

// Delete removes the project, its tasks and its memberships in one transaction.
func (r *GormProjectRepository) Delete(ctx context.Context, projectID, userID uuid.UUID) ([]uuid.UUID, int64, error) {
	var (
		memberIDs []uuid.UUID
		affected  int64
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owned int64
		err := tx.Model(&models.Project{}).
			Where("projects.id = ?", projectID).
			Scopes(access.Projects(userID, access.Owner)).
			Count(&owned).Error
		if err != nil {
			return err
		}
		if owned == 0 {
			return nil
		}

		if err := tx.Model(&models.ProjectMember{}).
			Where("project_id = ?", projectID).
			Pluck("user_id", &memberIDs).Error; err != nil {
			return err
		}

		// Delete all tasks in the project
		if err := tx.Where("project_id = ?", projectID).Delete(&models.Task{}).Error; err != nil {
			return err
		}

		// Delete all members
		if err := tx.Where("project_id = ?", projectID).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}

		// Delete project
		result := tx.Where("projects.id = ?", projectID).
			Scopes(access.Projects(userID, access.Owner)).
			Delete(&models.Project{})
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return memberIDs, affected, nil
}

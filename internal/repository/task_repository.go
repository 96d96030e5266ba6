package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yukikurage/project-management-api/internal/access"
	"github.com/yukikurage/project-management-api/internal/models"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *GormTaskRepository) ListForProject(ctx context.Context, projectID, userID uuid.UUID) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.WithContext(ctx).
		Where("tasks.project_id = ?", projectID).
		Scopes(access.ProjectTasks(userID, access.Member)).
		Order("tasks.added_time ASC, tasks.id ASC").
		Find(&tasks).Error
	return tasks, err
}

// UpdateFields rewrites title, description and priority. A nil DueDate keeps
// the stored due date.
func (r *GormTaskRepository) UpdateFields(ctx context.Context, taskID, projectID, userID uuid.UUID, fields TaskFields) (int64, error) {
	updates := map[string]interface{}{
		"title":       fields.Title,
		"description": fields.Description,
		"priority":    fields.Priority,
	}
	if fields.DueDate != nil {
		updates["due_date"] = fields.DueDate
	}
	result := r.scoped(ctx, taskID, projectID, userID, access.Owner).Updates(updates)
	return result.RowsAffected, result.Error
}

// SetDone stamps done_time with at when marking done, and clears it otherwise.
func (r *GormTaskRepository) SetDone(ctx context.Context, taskID, projectID, userID uuid.UUID, isDone bool, at time.Time) (int64, error) {
	var doneTime *time.Time
	if isDone {
		doneTime = &at
	}
	result := r.scoped(ctx, taskID, projectID, userID, access.Member).
		Updates(map[string]interface{}{
			"is_done":   isDone,
			"done_time": doneTime,
		})
	return result.RowsAffected, result.Error
}

func (r *GormTaskRepository) Delete(ctx context.Context, taskID, projectID, userID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("tasks.id = ? AND tasks.project_id = ?", taskID, projectID).
		Scopes(access.ProjectTasks(userID, access.Owner)).
		Delete(&models.Task{})
	return result.RowsAffected, result.Error
}

func (r *GormTaskRepository) scoped(ctx context.Context, taskID, projectID, userID uuid.UUID, level access.Level) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("tasks.id = ? AND tasks.project_id = ?", taskID, projectID).
		Scopes(access.ProjectTasks(userID, level))
}

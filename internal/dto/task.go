package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/yukikurage/project-management-api/internal/models"
)

// TaskSummaryDTO represents a task in list responses
type TaskSummaryDTO struct {
	ID        uuid.UUID           `json:"id"`
	Title     string              `json:"title"`
	Priority  models.TaskPriority `json:"priority"`
	IsDone    bool                `json:"is_done"`
	AddedTime time.Time           `json:"added_time"`
}

// TaskDTO represents a task with all of its fields
type TaskDTO struct {
	ID          uuid.UUID           `json:"id"`
	ProjectID   uuid.UUID           `json:"project_id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Priority    models.TaskPriority `json:"priority"`
	IsDone      bool                `json:"is_done"`
	AddedTime   time.Time           `json:"added_time"`
	DoneTime    *time.Time          `json:"done_time"`
	DueDate     *time.Time          `json:"due_date"`
}

// ToTaskSummaryDTO converts a task model to its list DTO
func ToTaskSummaryDTO(task models.Task) TaskSummaryDTO {
	return TaskSummaryDTO{
		ID:        task.ID,
		Title:     task.Title,
		Priority:  task.Priority,
		IsDone:    task.IsDone,
		AddedTime: task.AddedTime,
	}
}

func ToTaskSummaryDTOs(tasks []models.Task) []TaskSummaryDTO {
	dtos := make([]TaskSummaryDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskSummaryDTO(task)
	}
	return dtos
}

// ToTaskDTO converts a task model to DTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		ProjectID:   task.ProjectID,
		Title:       task.Title,
		Description: task.Description,
		Priority:    task.Priority,
		IsDone:      task.IsDone,
		AddedTime:   task.AddedTime,
		DoneTime:    task.DoneTime,
		DueDate:     task.DueDate,
	}
}

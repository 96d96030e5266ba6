package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/yukikurage/project-management-api/internal/models"
)

// ProjectDTO represents a project in list responses
type ProjectDTO struct {
	ID          uuid.UUID            `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Status      models.ProjectStatus `json:"status"`
	OwnerID     uuid.UUID            `json:"owner_id"`
	CreatedTime time.Time            `json:"created_time"`
}

// ProjectDetailDTO represents a project with its tasks
type ProjectDetailDTO struct {
	ProjectDTO
	Tasks []TaskSummaryDTO `json:"tasks"`
}

// ToProjectDTO converts a project model to DTO
func ToProjectDTO(project models.Project) ProjectDTO {
	return ProjectDTO{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		Status:      project.Status,
		OwnerID:     project.OwnerID,
		CreatedTime: project.CreatedTime,
	}
}

func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	dtos := make([]ProjectDTO, len(projects))
	for i, project := range projects {
		dtos[i] = ToProjectDTO(project)
	}
	return dtos
}

// ToProjectDetailDTO converts a project and its preloaded tasks to DTO
func ToProjectDetailDTO(project models.Project) ProjectDetailDTO {
	return ProjectDetailDTO{
		ProjectDTO: ToProjectDTO(project),
		Tasks:      ToTaskSummaryDTOs(project.Tasks),
	}
}

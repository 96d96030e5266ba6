package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/yukikurage/project-management-api/internal/access"
	"github.com/yukikurage/project-management-api/internal/cache"
	"github.com/yukikurage/project-management-api/internal/dto"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/repository"
)

// ProjectService provides business logic for project operations.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	cache       *cache.Cache
	invalidate  invalidator
	logger      logrus.FieldLogger
	now         func() time.Time
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, memberRepo repository.MemberRepository, c *cache.Cache, logger logrus.FieldLogger) *ProjectService {
	logger = orStandardLogger(logger)
	return &ProjectService{
		projectRepo: projectRepo,
		cache:       c,
		invalidate:  invalidator{cache: c, members: memberRepo, logger: logger},
		logger:      logger,
		now:         time.Now,
	}
}

// CreateProjectInput represents parameters to create a new project.
type CreateProjectInput struct {
	Name        string
	Description string
}

// UpdateProjectInput represents parameters to edit a project.
type UpdateProjectInput struct {
	ProjectID   uuid.UUID
	Name        string
	Description string
}

// UpdateProjectStatusInput represents parameters to change a project's status.
type UpdateProjectStatusInput struct {
	ProjectID uuid.UUID
	Status    models.ProjectStatus
}

// GetUserProjects lists the projects userID is a member of.
func (s *ProjectService) GetUserProjects(ctx context.Context, userID uuid.UUID) ([]dto.ProjectDTO, error) {
	key := cache.UserProjectsKey(userID)
	if projects, ok := cache.Get[[]dto.ProjectDTO](ctx, s.cache, key); ok {
		return projects, nil
	}
	ticket := s.cache.Ticket(ctx, key)

	projects, err := s.projectRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	views := dto.ToProjectDTOs(projects)
	s.cache.Fill(ctx, ticket, views)
	return views, nil
}

// GetProjectByID returns a project with its tasks if userID is a member.
func (s *ProjectService) GetProjectByID(ctx context.Context, projectID, userID uuid.UUID) (*dto.ProjectDetailDTO, error) {
	key := cache.ProjectKey(projectID, userID)
	if project, ok := cache.Get[dto.ProjectDetailDTO](ctx, s.cache, key); ok {
		return &project, nil
	}
	ticket := s.cache.Ticket(ctx, key)

	project, err := s.projectRepo.FindForUser(ctx, projectID, userID, access.Member)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	view := dto.ToProjectDetailDTO(*project)
	s.cache.Fill(ctx, ticket, view)
	return &view, nil
}

// CreateProject creates a project owned by userID, who also becomes its first member.
func (s *ProjectService) CreateProject(ctx context.Context, input CreateProjectInput, userID uuid.UUID) (*dto.ProjectDetailDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidProjectName
	}

	now := s.now().UTC()
	project := &models.Project{
		ID:          uuid.New(),
		OwnerID:     userID,
		Name:        name,
		Description: input.Description,
		Status:      models.ProjectStatusInProgress,
		CreatedTime: now,
	}
	owner := &models.ProjectMember{JoinedAt: now}

	if err := s.projectRepo.CreateWithOwner(ctx, project, owner); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.invalidate.users(ctx, project.ID, []uuid.UUID{userID}, userProjectsView)

	s.logger.WithFields(logrus.Fields{
		"project_id": project.ID,
		"user_id":    userID,
	}).Info("Project created")

	view := dto.ToProjectDetailDTO(*project)
	return &view, nil
}

// UpdateProject edits name and description. Only the owner may do this.
func (s *ProjectService) UpdateProject(ctx context.Context, input UpdateProjectInput, userID uuid.UUID) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return ErrInvalidProjectName
	}

	affected, err := s.projectRepo.UpdateFields(ctx, input.ProjectID, userID, repository.ProjectFields{
		Name:        name,
		Description: input.Description,
	})
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	if affected == 0 {
		s.logNotFound(input.ProjectID, userID, "update")
		return ErrProjectNotFound
	}

	s.invalidate.project(ctx, input.ProjectID, []uuid.UUID{userID}, userProjectsView, projectView)
	return nil
}

// UpdateProjectStatus changes the status. Only the owner may do this.
func (s *ProjectService) UpdateProjectStatus(ctx context.Context, input UpdateProjectStatusInput, userID uuid.UUID) error {
	if !input.Status.Valid() {
		return ErrInvalidStatus
	}

	affected, err := s.projectRepo.UpdateStatus(ctx, input.ProjectID, userID, input.Status)
	if err != nil {
		return fmt.Errorf("failed to update project status: %w", err)
	}
	if affected == 0 {
		s.logNotFound(input.ProjectID, userID, "update status")
		return ErrProjectNotFound
	}

	s.invalidate.project(ctx, input.ProjectID, []uuid.UUID{userID}, userProjectsView, projectView)
	return nil
}

// DeleteProject removes a project with its tasks and memberships. Only the owner may do this.
func (s *ProjectService) DeleteProject(ctx context.Context, projectID, userID uuid.UUID) error {
	memberIDs, affected, err := s.projectRepo.Delete(ctx, projectID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if affected == 0 {
		s.logNotFound(projectID, userID, "delete")
		return ErrProjectNotFound
	}

	// Memberships are gone, so fan out to the IDs captured inside the delete.
	s.invalidate.users(ctx, projectID, append(memberIDs, userID),
		userProjectsView, projectView, projectTasksView, projectMembersView)

	s.logger.WithFields(logrus.Fields{
		"project_id": projectID,
		"user_id":    userID,
	}).Info("Project deleted")
	return nil
}

func (s *ProjectService) logNotFound(projectID, userID uuid.UUID, action string) {
	s.logger.WithFields(logrus.Fields{
		"project_id": projectID,
		"user_id":    userID,
		"action":     action,
	}).Warn("Project not found or not accessible")
}

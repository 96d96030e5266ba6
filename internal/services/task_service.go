package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yukikurage/project-management-api/internal/access"
	"github.com/yukikurage/project-management-api/internal/cache"
	"github.com/yukikurage/project-management-api/internal/constants"
	"github.com/yukikurage/project-management-api/internal/dto"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/repository"
)

const (
	minTaskTitleLength   = 3
	maxTaskTitleLength   = 100
	maxDescriptionLength = 500
)

// TaskGenerator extracts task drafts from free text.
type TaskGenerator interface {
	GenerateTasksFromText(ctx context.Context, text string) ([]GeneratedTask, error)
}

// TaskService provides business logic for task operations.
type TaskService struct {
	taskRepo   repository.TaskRepository
	checker    *access.Checker
	cache      *cache.Cache
	invalidate invalidator
	generator  TaskGenerator
	logger     logrus.FieldLogger
	now        func() time.Time
}

// NewTaskService creates a new TaskService. generator may be nil, which disables GenerateTasks.
func NewTaskService(
	taskRepo repository.TaskRepository,
	memberRepo repository.MemberRepository,
	checker *access.Checker,
	c *cache.Cache,
	generator TaskGenerator,
	logger logrus.FieldLogger,
) *TaskService {
	logger = orStandardLogger(logger)
	return &TaskService{
		taskRepo:   taskRepo,
		checker:    checker,
		cache:      c,
		invalidate: invalidator{cache: c, members: memberRepo, logger: logger},
		generator:  generator,
		logger:     logger,
		now:        time.Now,
	}
}

// AddTaskInput represents parameters to create a task.
type AddTaskInput struct {
	ProjectID   uuid.UUID
	Title       string
	Description string
	Priority    models.TaskPriority
	DueDate     *time.Time
}

// UpdateTaskInput represents parameters to edit a task.
type UpdateTaskInput struct {
	TaskID      uuid.UUID
	ProjectID   uuid.UUID
	Title       string
	Description string
	Priority    models.TaskPriority
	DueDate     *time.Time
}

// DoTaskInput represents parameters to toggle a task's completion.
type DoTaskInput struct {
	TaskID    uuid.UUID
	ProjectID uuid.UUID
	IsDone    bool
}

// GenerateTasksInput represents parameters to create tasks from free text.
type GenerateTasksInput struct {
	ProjectID uuid.UUID
	Text      string
}

// GetProjectTasks lists a project's tasks in insertion order if userID is a member.
func (s *TaskService) GetProjectTasks(ctx context.Context, projectID, userID uuid.UUID) ([]dto.TaskSummaryDTO, error) {
	key := cache.ProjectTasksKey(projectID, userID)
	if tasks, ok := cache.Get[[]dto.TaskSummaryDTO](ctx, s.cache, key); ok {
		return tasks, nil
	}
	ticket := s.cache.Ticket(ctx, key)

	// An empty list cannot tell a taskless project from an inaccessible one.
	if err := s.require(ctx, projectID, userID, access.Member); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListForProject(ctx, projectID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	views := dto.ToTaskSummaryDTOs(tasks)
	s.cache.Fill(ctx, ticket, views)
	return views, nil
}

// AddTask creates a task in a project owned by userID.
func (s *TaskService) AddTask(ctx context.Context, input AddTaskInput, userID uuid.UUID) (*dto.TaskDTO, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrInvalidTaskTitle
	}
	if !input.Priority.Valid() {
		return nil, ErrInvalidPriority
	}

	if err := s.require(ctx, input.ProjectID, userID, access.Owner); err != nil {
		return nil, err
	}

	task := &models.Task{
		ID:          uuid.New(),
		ProjectID:   input.ProjectID,
		Title:       title,
		Description: input.Description,
		Priority:    input.Priority,
		AddedTime:   s.now().UTC(),
		DueDate:     input.DueDate,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.invalidate.project(ctx, input.ProjectID, []uuid.UUID{userID}, projectTasksView, projectView)

	view := dto.ToTaskDTO(*task)
	return &view, nil
}

// UpdateTask edits a task of a project owned by userID.
func (s *TaskService) UpdateTask(ctx context.Context, input UpdateTaskInput, userID uuid.UUID) error {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return ErrInvalidTaskTitle
	}
	if !input.Priority.Valid() {
		return ErrInvalidPriority
	}

	affected, err := s.taskRepo.UpdateFields(ctx, input.TaskID, input.ProjectID, userID, repository.TaskFields{
		Title:       title,
		Description: input.Description,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
	})
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if affected == 0 {
		s.logNotFound(input.TaskID, input.ProjectID, userID, "update")
		return ErrTaskNotFound
	}

	s.invalidate.project(ctx, input.ProjectID, []uuid.UUID{userID}, projectTasksView, projectView)
	return nil
}

// DoTask marks a task done or not done. Any member may do this.
func (s *TaskService) DoTask(ctx context.Context, input DoTaskInput, userID uuid.UUID) error {
	affected, err := s.taskRepo.SetDone(ctx, input.TaskID, input.ProjectID, userID, input.IsDone, s.now().UTC())
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if affected == 0 {
		s.logNotFound(input.TaskID, input.ProjectID, userID, "do")
		return ErrTaskNotFound
	}

	s.invalidate.project(ctx, input.ProjectID, []uuid.UUID{userID}, projectTasksView, projectView)
	return nil
}

// RemoveTask deletes a task of a project owned by userID.
func (s *TaskService) RemoveTask(ctx context.Context, taskID, projectID, userID uuid.UUID) error {
	affected, err := s.taskRepo.Delete(ctx, taskID, projectID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if affected == 0 {
		s.logNotFound(taskID, projectID, userID, "remove")
		return ErrTaskNotFound
	}

	s.invalidate.project(ctx, projectID, []uuid.UUID{userID}, projectTasksView, projectView)
	return nil
}

// GenerateTasks extracts tasks from text and adds the valid ones to a project owned by userID.
func (s *TaskService) GenerateTasks(ctx context.Context, input GenerateTasksInput, userID uuid.UUID) ([]dto.TaskDTO, error) {
	if s.generator == nil {
		return nil, ErrAIServiceUnavailable
	}
	if strings.TrimSpace(input.Text) == "" {
		return nil, ErrInvalidGenerationText
	}

	if err := s.require(ctx, input.ProjectID, userID, access.Owner); err != nil {
		return nil, err
	}

	drafts, err := s.generator.GenerateTasksFromText(ctx, input.Text)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tasks: %w", err)
	}

	created := make([]dto.TaskDTO, 0, len(drafts))
	for _, draft := range drafts {
		if len(created) == constants.MaxAIGeneratedTasks {
			break
		}
		add, ok := normalizeDraft(draft)
		if !ok {
			s.logger.WithField("title", draft.Title).Debug("Skipping generated task with invalid title")
			continue
		}
		add.ProjectID = input.ProjectID

		task, err := s.AddTask(ctx, add, userID)
		if err != nil {
			return created, err
		}
		created = append(created, *task)
	}

	if len(created) == 0 {
		return nil, ErrNoTasksGenerated
	}

	s.logger.WithFields(logrus.Fields{
		"project_id": input.ProjectID,
		"count":      len(created),
	}).Info("Generated tasks from text")
	return created, nil
}

// normalizeDraft applies the task field limits to a generated draft.
func normalizeDraft(draft GeneratedTask) (AddTaskInput, bool) {
	title := strings.TrimSpace(draft.Title)
	if n := utf8.RuneCountInString(title); n < minTaskTitleLength || n > maxTaskTitleLength {
		return AddTaskInput{}, false
	}

	description := strings.TrimSpace(draft.Description)
	if utf8.RuneCountInString(description) > maxDescriptionLength {
		description = string([]rune(description)[:maxDescriptionLength])
	}

	priority := models.TaskPriority(draft.Priority)
	if !priority.Valid() {
		priority = models.TaskPriorityMedium
	}

	return AddTaskInput{
		Title:       title,
		Description: description,
		Priority:    priority,
		DueDate:     draft.DueDate,
	}, true
}

func (s *TaskService) require(ctx context.Context, projectID, userID uuid.UUID, level access.Level) error {
	ok, err := s.checker.Allows(ctx, userID, projectID, level)
	if err != nil {
		return fmt.Errorf("failed to check project access: %w", err)
	}
	if !ok {
		s.logger.WithFields(logrus.Fields{
			"project_id": projectID,
			"user_id":    userID,
			"level":      level.String(),
		}).Warn("Project not found or not accessible")
		return ErrProjectNotFound
	}
	return nil
}

func (s *TaskService) logNotFound(taskID, projectID, userID uuid.UUID, action string) {
	s.logger.WithFields(logrus.Fields{
		"task_id":    taskID,
		"project_id": projectID,
		"user_id":    userID,
		"action":     action,
	}).Warn("Task not found or not accessible")
}

package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apierrors "github.com/yukikurage/project-management-api/internal/errors"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/services"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

type taskRequest struct {
	Title       string     `json:"title" binding:"required,min=3,max=100"`
	Description string     `json:"description" binding:"max=500"`
	Priority    string     `json:"priority" binding:"required,oneof=Low Medium High"`
	DueDate     *time.Time `json:"due_date"`
}

// ListTasks returns the tasks of a project in the order they were added
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, projectID, ok := projectScope(c)
	if !ok {
		return
	}

	tasks, err := h.taskService.GetProjectTasks(c.Request.Context(), projectID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": tasks,
	})
}

// CreateTask adds a task to a project
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, projectID, ok := projectScope(c)
	if !ok {
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	task, err := h.taskService.AddTask(c.Request.Context(), services.AddTaskInput{
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    models.TaskPriority(req.Priority),
		DueDate:     req.DueDate,
	}, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// UpdateTask edits the title, description and priority of a task
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, projectID, taskID, ok := taskScope(c)
	if !ok {
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	err := h.taskService.UpdateTask(c.Request.Context(), services.UpdateTaskInput{
		TaskID:      taskID,
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    models.TaskPriority(req.Priority),
		DueDate:     req.DueDate,
	}, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DoTask marks a task as done or not done
func (h *TaskHandler) DoTask(c *gin.Context) {
	userID, projectID, taskID, ok := taskScope(c)
	if !ok {
		return
	}

	// A pointer so that an explicit false passes the required check.
	type DoTaskRequest struct {
		IsDone *bool `json:"is_done" binding:"required"`
	}

	var req DoTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	err := h.taskService.DoTask(c.Request.Context(), services.DoTaskInput{
		TaskID:    taskID,
		ProjectID: projectID,
		IsDone:    *req.IsDone,
	}, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteTask removes a task from a project
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, projectID, taskID, ok := taskScope(c)
	if !ok {
		return
	}

	if err := h.taskService.RemoveTask(c.Request.Context(), taskID, projectID, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GenerateTasks extracts tasks from free text with the AI service and adds them to the project
func (h *TaskHandler) GenerateTasks(c *gin.Context) {
	userID, projectID, ok := projectScope(c)
	if !ok {
		return
	}

	type GenerateTasksRequest struct {
		Text string `json:"text" binding:"required,max=5000"`
	}

	var req GenerateTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	tasks, err := h.taskService.GenerateTasks(c.Request.Context(), services.GenerateTasksInput{
		ProjectID: projectID,
		Text:      req.Text,
	}, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"tasks": tasks,
	})
}

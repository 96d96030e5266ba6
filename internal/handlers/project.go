package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apierrors "github.com/yukikurage/project-management-api/internal/errors"
	"github.com/yukikurage/project-management-api/internal/middleware"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/services"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// ListProjects returns the projects the current user is a member of
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	projects, err := h.projectService.GetUserProjects(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": projects,
	})
}

// GetProject returns a single project with its tasks
func (h *ProjectHandler) GetProject(c *gin.Context) {
	userID, projectID, ok := projectScope(c)
	if !ok {
		return
	}

	project, err := h.projectService.GetProjectByID(c.Request.Context(), projectID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// CreateProject creates a project owned by the current user
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateProjectRequest struct {
		Name        string `json:"name" binding:"required,min=3,max=36"`
		Description string `json:"description" binding:"max=500"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), services.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
	}, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, project)
}

// UpdateProject edits the name and description of a project
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	userID, projectID, ok := projectScope(c)
	if !ok {
		return
	}

	type UpdateProjectRequest struct {
		Name        string `json:"name" binding:"required,min=3,max=36"`
		Description string `json:"description" binding:"max=500"`
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	err := h.projectService.UpdateProject(c.Request.Context(), services.UpdateProjectInput{
		ProjectID:   projectID,
		Name:        req.Name,
		Description: req.Description,
	}, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.respondWithProject(c, projectID, userID)
}

// UpdateProjectStatus changes the status of a project
func (h *ProjectHandler) UpdateProjectStatus(c *gin.Context) {
	userID, projectID, ok := projectScope(c)
	if !ok {
		return
	}

	type UpdateStatusRequest struct {
		Status string `json:"status" binding:"required,oneof=InProgress Finished Canceled Deferred"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	err := h.projectService.UpdateProjectStatus(c.Request.Context(), services.UpdateProjectStatusInput{
		ProjectID: projectID,
		Status:    models.ProjectStatus(req.Status),
	}, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.respondWithProject(c, projectID, userID)
}

// DeleteProject deletes a project with its tasks and memberships
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	userID, projectID, ok := projectScope(c)
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(c.Request.Context(), projectID, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// respondWithProject re-reads the project after a write. The write already
// invalidated the caller's cached view, so this repopulates it.
func (h *ProjectHandler) respondWithProject(c *gin.Context, projectID, userID uuid.UUID) {
	project, err := h.projectService.GetProjectByID(c.Request.Context(), projectID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

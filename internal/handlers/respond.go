package handlers

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yukikurage/project-management-api/internal/constants"
	apierrors "github.com/yukikurage/project-management-api/internal/errors"
	"github.com/yukikurage/project-management-api/internal/logging"
	"github.com/yukikurage/project-management-api/internal/middleware"
	"github.com/yukikurage/project-management-api/internal/services"
)

// respondServiceError maps project, task and membership errors to responses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrProjectMemberNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrSearchTermTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Search term must be at least %d characters", constants.MinSearchTermLength))
	case errors.Is(err, services.ErrInvalidProjectName),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidTaskTitle),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrInvalidGenerationText):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrCannotRemoveOwner):
		apierrors.InvalidOperation(c, err.Error())
	case errors.Is(err, services.ErrNoTasksGenerated):
		apierrors.InvalidOperation(c, err.Error())
	case errors.Is(err, services.ErrAlreadyProjectMember):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrAIServiceUnavailable):
		apierrors.ServiceUnavailable(c, err.Error())
	default:
		logging.Logger.WithError(err).WithField("path", c.FullPath()).Error("Request failed")
		apierrors.InternalError(c, "")
	}
}

// projectScope resolves the acting user and the :id project parameter,
// writing the error response itself when either is missing.
func projectScope(c *gin.Context) (userID, projectID uuid.UUID, ok bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return uuid.Nil, uuid.Nil, false
	}

	projectID, ok = middleware.UUIDFromContext(c, middleware.ContextKeyProjectID, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid project ID")
		return uuid.Nil, uuid.Nil, false
	}
	return userID, projectID, true
}

// taskScope additionally resolves the :task_id parameter.
func taskScope(c *gin.Context) (userID, projectID, taskID uuid.UUID, ok bool) {
	userID, projectID, ok = projectScope(c)
	if !ok {
		return uuid.Nil, uuid.Nil, uuid.Nil, false
	}

	taskID, ok = middleware.UUIDFromContext(c, middleware.ContextKeyTaskID, "task_id")
	if !ok {
		apierrors.BadRequest(c, "Invalid task ID")
		return uuid.Nil, uuid.Nil, uuid.Nil, false
	}
	return userID, projectID, taskID, true
}

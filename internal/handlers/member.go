package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apierrors "github.com/yukikurage/project-management-api/internal/errors"
	"github.com/yukikurage/project-management-api/internal/middleware"
	"github.com/yukikurage/project-management-api/internal/services"
	"github.com/yukikurage/project-management-api/internal/utils"
)

type MemberHandler struct {
	membershipService *services.MembershipService
}

func NewMemberHandler(membershipService *services.MembershipService) *MemberHandler {
	return &MemberHandler{
		membershipService: membershipService,
	}
}

// SearchUsers finds users by username prefix
func (h *MemberHandler) SearchUsers(c *gin.Context) {
	if _, exists := middleware.GetUserID(c); !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	page := utils.ParsePage(c)
	users, total, err := h.membershipService.SearchUsers(c.Request.Context(), c.Query("term"), page)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"pagination": page.Info(total),
	})
}

// ListMembers returns the members of a project
func (h *MemberHandler) ListMembers(c *gin.Context) {
	userID, projectID, ok := projectScope(c)
	if !ok {
		return
	}

	members, err := h.membershipService.GetProjectMembers(c.Request.Context(), projectID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"members": members,
	})
}

// AddMember adds a user to a project
func (h *MemberHandler) AddMember(c *gin.Context) {
	userID, projectID, ok := projectScope(c)
	if !ok {
		return
	}

	type AddMemberRequest struct {
		UserID string `json:"user_id" binding:"required,uuid"`
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	targetID, err := uuid.Parse(req.UserID)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.membershipService.AddUserToProject(c.Request.Context(), projectID, targetID, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RemoveMember removes a user from a project
func (h *MemberHandler) RemoveMember(c *gin.Context) {
	userID, projectID, ok := projectScope(c)
	if !ok {
		return
	}

	targetID, ok := middleware.UUIDFromContext(c, middleware.ContextKeyMemberID, "user_id")
	if !ok {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.membershipService.RemoveUserFromProject(c.Request.Context(), projectID, targetID, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

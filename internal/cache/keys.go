package cache

import (
	"fmt"

	"github.com/google/uuid"
)

func UserProjectsKey(userID uuid.UUID) string {
	return fmt.Sprintf("UserProjects_%s", userID)
}

func ProjectKey(projectID, userID uuid.UUID) string {
	return fmt.Sprintf("Project_%s_%s", projectID, userID)
}

func ProjectTasksKey(projectID, userID uuid.UUID) string {
	return fmt.Sprintf("ProjectTasks_%s_%s", projectID, userID)
}

// ProjectMembersKey is not user scoped. Callers check membership before serving it.
func ProjectMembersKey(projectID uuid.UUID) string {
	return fmt.Sprintf("ProjectMembers_%s", projectID)
}

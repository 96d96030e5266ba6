package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yukikurage/project-management-api/internal/access"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/utils"
)

// ProjectFields holds the editable fields of a project
type ProjectFields struct {
	Name        string
	Description string
}

// TaskFields holds the editable fields of a task
type TaskFields struct {
	Title       string
	Description string
	Priority    models.TaskPriority
	DueDate     *time.Time
}

// ProjectRepository defines the interface for project data access.
// Scoped writes report the number of rows they changed; zero means the row is
// missing or outside the caller's reach, and the two cases are not told apart.
type ProjectRepository interface {
	// CreateWithOwner creates a project and the owner's membership within a single transaction.
	CreateWithOwner(ctx context.Context, project *models.Project, owner *models.ProjectMember) error

	// ListForUser lists the projects userID is a member of, ordered by name
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Project, error)

	// FindForUser finds a project reachable by userID at level, with its tasks in insertion order
	FindForUser(ctx context.Context, projectID, userID uuid.UUID, level access.Level) (*models.Project, error)

	// UpdateFields sets name and description on a project owned by userID
	UpdateFields(ctx context.Context, projectID, userID uuid.UUID, fields ProjectFields) (int64, error)

	// UpdateStatus sets the status of a project owned by userID
	UpdateStatus(ctx context.Context, projectID, userID uuid.UUID, status models.ProjectStatus) (int64, error)

	// Delete removes a project owned by userID together with its tasks and memberships.
	// It returns the IDs of the users who were members.
	Delete(ctx context.Context, projectID, userID uuid.UUID) ([]uuid.UUID, int64, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(ctx context.Context, task *models.Task) error

	// ListForProject lists the tasks of a project userID is a member of, in insertion order
	ListForProject(ctx context.Context, projectID, userID uuid.UUID) ([]models.Task, error)

	// UpdateFields edits a task of a project owned by userID
	UpdateFields(ctx context.Context, taskID, projectID, userID uuid.UUID, fields TaskFields) (int64, error)

	// SetDone marks a task of a project userID is a member of as done or not done
	SetDone(ctx context.Context, taskID, projectID, userID uuid.UUID, isDone bool, at time.Time) (int64, error)

	// Delete removes a task of a project owned by userID
	Delete(ctx context.Context, taskID, projectID, userID uuid.UUID) (int64, error)
}

// MemberRepository defines the interface for project membership data access
type MemberRepository interface {
	// Add adds a member to a project
	Add(ctx context.Context, member *models.ProjectMember) error

	// Remove removes a member from a project
	Remove(ctx context.Context, projectID, userID uuid.UUID) (int64, error)

	// Find finds a specific project member
	Find(ctx context.Context, projectID, userID uuid.UUID) (*models.ProjectMember, error)

	// ListWithUsers lists the members of a project with their users, in join order
	ListWithUsers(ctx context.Context, projectID uuid.UUID) ([]models.ProjectMember, error)

	// ListUserIDs lists the IDs of the members of a project
	ListUserIDs(ctx context.Context, projectID uuid.UUID) ([]uuid.UUID, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// CreateWithRole creates a user and assigns the named role within a single transaction.
	CreateWithRole(ctx context.Context, user *models.User, roleName string) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// SearchByUsernamePrefix lists users whose username starts with prefix, ordered by username
	SearchByUsernamePrefix(ctx context.Context, prefix string, page utils.Page) ([]models.User, int64, error)

	// RoleNames returns the names of the roles assigned to a user
	RoleNames(ctx context.Context, userID uuid.UUID) ([]string, error)
}

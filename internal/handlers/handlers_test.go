package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yukikurage/project-management-api/internal/access"
	"github.com/yukikurage/project-management-api/internal/constants"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/repository"
	"github.com/yukikurage/project-management-api/internal/services"
	"github.com/yukikurage/project-management-api/internal/testutil"
)

type handlerTestEnv struct {
	db *gorm.DB
	mr *miniredis.Miniredis

	projectService    *services.ProjectService
	taskService       *services.TaskService
	membershipService *services.MembershipService

	projects *ProjectHandler
	tasks    *TaskHandler
	members  *MemberHandler
}

func setupHandlerTestEnv(t *testing.T) handlerTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	c, mr := testutil.NewCache(t, 30*time.Minute)
	logger := testutil.NullLogger()

	memberRepo := repository.NewMemberRepository(db)
	checker := access.NewChecker(db)

	projectService := services.NewProjectService(repository.NewProjectRepository(db), memberRepo, c, logger)
	taskService := services.NewTaskService(repository.NewTaskRepository(db), memberRepo, checker, c, nil, logger)
	membershipService := services.NewMembershipService(repository.NewUserRepository(db), memberRepo, checker, c, logger)

	return handlerTestEnv{
		db:                db,
		mr:                mr,
		projectService:    projectService,
		taskService:       taskService,
		membershipService: membershipService,
		projects:          NewProjectHandler(projectService),
		tasks:             NewTaskHandler(taskService),
		members:           NewMemberHandler(membershipService),
	}
}

func testContext(method, url string, body interface{}, userID uuid.UUID, params ...gin.Param) (*gin.Context, *httptest.ResponseRecorder) {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = params
	if userID != uuid.Nil {
		c.Set(constants.ContextKeyUserID, userID)
	}

	return c, w
}

func projectParam(id uuid.UUID) gin.Param {
	return gin.Param{Key: "id", Value: id.String()}
}

func taskParam(id uuid.UUID) gin.Param {
	return gin.Param{Key: "task_id", Value: id.String()}
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

// sharedProject creates a project owned by owner that member has joined.
func (env handlerTestEnv) sharedProject(t *testing.T, owner, member *models.User) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	project, err := env.projectService.CreateProject(ctx, services.CreateProjectInput{Name: "Sprint 1"}, owner.ID)
	require.NoError(t, err)
	if member != nil {
		require.NoError(t, env.membershipService.AddUserToProject(ctx, project.ID, member.ID, owner.ID))
	}
	return project.ID
}

package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/yukikurage/project-management-api/internal/access"
	"github.com/yukikurage/project-management-api/internal/cache"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/repository"
	"github.com/yukikurage/project-management-api/internal/services"
	"github.com/yukikurage/project-management-api/internal/testutil"
	"github.com/yukikurage/project-management-api/internal/utils"
)

type fakeGenerator struct {
	tasks []services.GeneratedTask
	err   error
	calls int
}

func (g *fakeGenerator) GenerateTasksFromText(ctx context.Context, text string) ([]services.GeneratedTask, error) {
	g.calls++
	return g.tasks, g.err
}

// ServicesTestSuite runs the services against sqlite and miniredis.
type ServicesTestSuite struct {
	suite.Suite
	ctx   context.Context
	db    *gorm.DB
	mr    *miniredis.Miniredis
	cache *cache.Cache

	projects  *services.ProjectService
	tasks     *services.TaskService
	members   *services.MembershipService
	generator *fakeGenerator

	owner    *models.User
	member   *models.User
	outsider *models.User
}

func (s *ServicesTestSuite) SetupTest() {
	t := s.T()
	s.ctx = context.Background()
	s.db = testutil.NewDB(t)

	var c *cache.Cache
	c, s.mr = testutil.NewCache(t, 30*time.Minute)
	s.cache = c
	logger := testutil.NullLogger()

	projectRepo := repository.NewProjectRepository(s.db)
	taskRepo := repository.NewTaskRepository(s.db)
	memberRepo := repository.NewMemberRepository(s.db)
	userRepo := repository.NewUserRepository(s.db)
	checker := access.NewChecker(s.db)
	s.generator = &fakeGenerator{}

	s.projects = services.NewProjectService(projectRepo, memberRepo, c, logger)
	s.tasks = services.NewTaskService(taskRepo, memberRepo, checker, c, s.generator, logger)
	s.members = services.NewMembershipService(userRepo, memberRepo, checker, c, logger)

	s.owner = testutil.CreateUser(t, s.db, "owner")
	s.member = testutil.CreateUser(t, s.db, "member")
	s.outsider = testutil.CreateUser(t, s.db, "outsider")
}

func TestServicesTestSuite(t *testing.T) {
	suite.Run(t, new(ServicesTestSuite))
}

// sharedProject creates a project owned by owner with member added.
func (s *ServicesTestSuite) sharedProject(name string) uuid.UUID {
	project, err := s.projects.CreateProject(s.ctx, services.CreateProjectInput{Name: name}, s.owner.ID)
	s.Require().NoError(err)
	s.Require().NoError(s.members.AddUserToProject(s.ctx, project.ID, s.member.ID, s.owner.ID))
	return project.ID
}

func (s *ServicesTestSuite) addTask(projectID uuid.UUID, title string) uuid.UUID {
	task, err := s.tasks.AddTask(s.ctx, services.AddTaskInput{ProjectID: projectID, Title: title, Priority: models.TaskPriorityMedium}, s.owner.ID)
	s.Require().NoError(err)
	return task.ID
}

// Scenario: create, read, and hit the cache.
func (s *ServicesTestSuite) TestCreateThenReadIsCached() {
	created, err := s.projects.CreateProject(s.ctx, services.CreateProjectInput{Name: "Apollo", Description: "moon"}, s.owner.ID)
	s.Require().NoError(err)
	s.Equal(models.ProjectStatusInProgress, created.Status)
	s.Equal(s.owner.ID, created.OwnerID)
	s.Empty(created.Tasks)

	list, err := s.projects.GetUserProjects(s.ctx, s.owner.ID)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal("Apollo", list[0].Name)
	s.True(s.mr.Exists(cache.UserProjectsKey(s.owner.ID)))

	// Change the row behind the cache's back; the cached view is still served.
	s.Require().NoError(s.db.Model(&models.Project{}).Where("id = ?", created.ID).Update("name", "Changed").Error)
	list, err = s.projects.GetUserProjects(s.ctx, s.owner.ID)
	s.Require().NoError(err)
	s.Equal("Apollo", list[0].Name)
}

// Scenario: non-member reads, writes, and deletes all look like not found.
func (s *ServicesTestSuite) TestNonMemberSeesNotFound() {
	projectID := s.sharedProject("Apollo")
	taskID := s.addTask(projectID, "first task")

	_, err := s.projects.GetProjectByID(s.ctx, projectID, s.outsider.ID)
	s.ErrorIs(err, services.ErrProjectNotFound)

	_, err = s.tasks.GetProjectTasks(s.ctx, projectID, s.outsider.ID)
	s.ErrorIs(err, services.ErrProjectNotFound)

	_, err = s.members.GetProjectMembers(s.ctx, projectID, s.outsider.ID)
	s.ErrorIs(err, services.ErrProjectNotFound)

	err = s.projects.UpdateProject(s.ctx, services.UpdateProjectInput{ProjectID: projectID, Name: "Hijacked"}, s.outsider.ID)
	s.ErrorIs(err, services.ErrProjectNotFound)

	err = s.projects.DeleteProject(s.ctx, projectID, s.outsider.ID)
	s.ErrorIs(err, services.ErrProjectNotFound)

	err = s.tasks.DoTask(s.ctx, services.DoTaskInput{TaskID: taskID, ProjectID: projectID, IsDone: true}, s.outsider.ID)
	s.ErrorIs(err, services.ErrTaskNotFound)

	list, err := s.projects.GetUserProjects(s.ctx, s.outsider.ID)
	s.Require().NoError(err)
	s.Empty(list)

	// A project that does not exist is indistinguishable.
	_, err = s.projects.GetProjectByID(s.ctx, uuid.New(), s.outsider.ID)
	s.ErrorIs(err, services.ErrProjectNotFound)
}

// Scenario: a member may complete tasks but not edit them or the project.
func (s *ServicesTestSuite) TestMemberMayOnlyToggleTasks() {
	projectID := s.sharedProject("Apollo")
	taskID := s.addTask(projectID, "first task")

	s.Require().NoError(s.tasks.DoTask(s.ctx, services.DoTaskInput{TaskID: taskID, ProjectID: projectID, IsDone: true}, s.member.ID))

	ownerTasks, err := s.tasks.GetProjectTasks(s.ctx, projectID, s.owner.ID)
	s.Require().NoError(err)
	s.Require().Len(ownerTasks, 1)
	s.True(ownerTasks[0].IsDone)

	err = s.tasks.UpdateTask(s.ctx, services.UpdateTaskInput{TaskID: taskID, ProjectID: projectID, Title: "renamed", Priority: models.TaskPriorityHigh}, s.member.ID)
	s.ErrorIs(err, services.ErrTaskNotFound)

	err = s.tasks.RemoveTask(s.ctx, taskID, projectID, s.member.ID)
	s.ErrorIs(err, services.ErrTaskNotFound)

	_, err = s.tasks.AddTask(s.ctx, services.AddTaskInput{ProjectID: projectID, Title: "sneaky", Priority: models.TaskPriorityLow}, s.member.ID)
	s.ErrorIs(err, services.ErrProjectNotFound)

	err = s.projects.UpdateProjectStatus(s.ctx, services.UpdateProjectStatusInput{ProjectID: projectID, Status: models.ProjectStatusFinished}, s.member.ID)
	s.ErrorIs(err, services.ErrProjectNotFound)

	err = s.projects.DeleteProject(s.ctx, projectID, s.member.ID)
	s.ErrorIs(err, services.ErrProjectNotFound)

	err = s.members.AddUserToProject(s.ctx, projectID, s.outsider.ID, s.member.ID)
	s.ErrorIs(err, services.ErrProjectNotFound)

	// Denied writes leave the row unchanged.
	var task models.Task
	s.Require().NoError(s.db.First(&task, "id = ?", taskID).Error)
	s.Equal("first task", task.Title)
}

// Writes by one member become visible to every other member on the next read.
func (s *ServicesTestSuite) TestWritesInvalidateEveryMembersViews() {
	projectID := s.sharedProject("Apollo")

	// Warm both members' caches.
	for _, u := range []uuid.UUID{s.owner.ID, s.member.ID} {
		_, err := s.projects.GetProjectByID(s.ctx, projectID, u)
		s.Require().NoError(err)
		_, err = s.tasks.GetProjectTasks(s.ctx, projectID, u)
		s.Require().NoError(err)
		_, err = s.projects.GetUserProjects(s.ctx, u)
		s.Require().NoError(err)
	}

	taskID := s.addTask(projectID, "first task")

	for _, u := range []uuid.UUID{s.owner.ID, s.member.ID} {
		tasks, err := s.tasks.GetProjectTasks(s.ctx, projectID, u)
		s.Require().NoError(err)
		s.Len(tasks, 1)

		project, err := s.projects.GetProjectByID(s.ctx, projectID, u)
		s.Require().NoError(err)
		s.Len(project.Tasks, 1)
	}

	// The member completes the task; the owner's views follow.
	s.Require().NoError(s.tasks.DoTask(s.ctx, services.DoTaskInput{TaskID: taskID, ProjectID: projectID, IsDone: true}, s.member.ID))
	project, err := s.projects.GetProjectByID(s.ctx, projectID, s.owner.ID)
	s.Require().NoError(err)
	s.True(project.Tasks[0].IsDone)

	// The owner renames the project; the member's list follows.
	s.Require().NoError(s.projects.UpdateProject(s.ctx, services.UpdateProjectInput{ProjectID: projectID, Name: "Artemis", Description: "again"}, s.owner.ID))
	list, err := s.projects.GetUserProjects(s.ctx, s.member.ID)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal("Artemis", list[0].Name)

	s.Require().NoError(s.projects.UpdateProjectStatus(s.ctx, services.UpdateProjectStatusInput{ProjectID: projectID, Status: models.ProjectStatusDeferred}, s.owner.ID))
	detail, err := s.projects.GetProjectByID(s.ctx, projectID, s.member.ID)
	s.Require().NoError(err)
	s.Equal(models.ProjectStatusDeferred, detail.Status)

	s.Require().NoError(s.tasks.RemoveTask(s.ctx, taskID, projectID, s.owner.ID))
	tasks, err := s.tasks.GetProjectTasks(s.ctx, projectID, s.member.ID)
	s.Require().NoError(err)
	s.Empty(tasks)
}

// Scenario: after delete nobody sees the project and its tasks are gone.
func (s *ServicesTestSuite) TestDeleteProject() {
	projectID := s.sharedProject("Apollo")
	s.addTask(projectID, "first task")
	s.addTask(projectID, "second task")

	for _, u := range []uuid.UUID{s.owner.ID, s.member.ID} {
		_, err := s.projects.GetProjectByID(s.ctx, projectID, u)
		s.Require().NoError(err)
		_, err = s.projects.GetUserProjects(s.ctx, u)
		s.Require().NoError(err)
	}
	_, err := s.members.GetProjectMembers(s.ctx, projectID, s.member.ID)
	s.Require().NoError(err)

	s.Require().NoError(s.projects.DeleteProject(s.ctx, projectID, s.owner.ID))

	for _, u := range []uuid.UUID{s.owner.ID, s.member.ID} {
		_, err := s.projects.GetProjectByID(s.ctx, projectID, u)
		s.ErrorIs(err, services.ErrProjectNotFound)
		list, err := s.projects.GetUserProjects(s.ctx, u)
		s.Require().NoError(err)
		s.Empty(list)
	}
	s.False(s.mr.Exists(cache.ProjectMembersKey(projectID)))

	var count int64
	s.Require().NoError(s.db.Model(&models.Task{}).Where("project_id = ?", projectID).Count(&count).Error)
	s.Zero(count)

	s.ErrorIs(s.projects.DeleteProject(s.ctx, projectID, s.owner.ID), services.ErrProjectNotFound)
}

// Scenario: task updates and completion timestamps.
func (s *ServicesTestSuite) TestTaskLifecycle() {
	projectID := s.sharedProject("Apollo")
	s.addTask(projectID, "first task")
	taskID := s.addTask(projectID, "second task")
	s.addTask(projectID, "third task")

	tasks, err := s.tasks.GetProjectTasks(s.ctx, projectID, s.member.ID)
	s.Require().NoError(err)
	s.Require().Len(tasks, 3)
	s.Equal("first task", tasks[0].Title)
	s.Equal("second task", tasks[1].Title)
	s.Equal("third task", tasks[2].Title)

	s.Require().NoError(s.tasks.UpdateTask(s.ctx, services.UpdateTaskInput{
		TaskID: taskID, ProjectID: projectID, Title: "second task, edited", Description: "details", Priority: models.TaskPriorityHigh,
	}, s.owner.ID))

	tasks, err = s.tasks.GetProjectTasks(s.ctx, projectID, s.member.ID)
	s.Require().NoError(err)
	s.Equal("second task, edited", tasks[1].Title)
	s.Equal(models.TaskPriorityHigh, tasks[1].Priority)

	s.Require().NoError(s.tasks.DoTask(s.ctx, services.DoTaskInput{TaskID: taskID, ProjectID: projectID, IsDone: true}, s.member.ID))
	var stored models.Task
	s.Require().NoError(s.db.First(&stored, "id = ?", taskID).Error)
	s.True(stored.IsDone)
	s.NotNil(stored.DoneTime)

	s.Require().NoError(s.tasks.DoTask(s.ctx, services.DoTaskInput{TaskID: taskID, ProjectID: projectID, IsDone: false}, s.member.ID))
	var reopened models.Task
	s.Require().NoError(s.db.First(&reopened, "id = ?", taskID).Error)
	s.False(reopened.IsDone)
	s.Nil(reopened.DoneTime)

	// A task addressed through the wrong project is not found.
	otherID := s.sharedProject("Gemini")
	err = s.tasks.DoTask(s.ctx, services.DoTaskInput{TaskID: taskID, ProjectID: otherID, IsDone: true}, s.owner.ID)
	s.ErrorIs(err, services.ErrTaskNotFound)

	s.Require().NoError(s.tasks.RemoveTask(s.ctx, taskID, projectID, s.owner.ID))
	s.ErrorIs(s.tasks.RemoveTask(s.ctx, taskID, projectID, s.owner.ID), services.ErrTaskNotFound)
}

// Scenario: membership changes move projects in and out of users' lists.
func (s *ServicesTestSuite) TestMembershipChangesAreVisible() {
	created, err := s.projects.CreateProject(s.ctx, services.CreateProjectInput{Name: "Apollo"}, s.owner.ID)
	s.Require().NoError(err)
	projectID := created.ID

	// Warm the outsider's empty list and the shared members view.
	list, err := s.projects.GetUserProjects(s.ctx, s.member.ID)
	s.Require().NoError(err)
	s.Empty(list)
	members, err := s.members.GetProjectMembers(s.ctx, projectID, s.owner.ID)
	s.Require().NoError(err)
	s.Len(members, 1)

	s.Require().NoError(s.members.AddUserToProject(s.ctx, projectID, s.member.ID, s.owner.ID))
	s.ErrorIs(s.members.AddUserToProject(s.ctx, projectID, s.member.ID, s.owner.ID), services.ErrAlreadyProjectMember)
	s.ErrorIs(s.members.AddUserToProject(s.ctx, projectID, uuid.New(), s.owner.ID), services.ErrUserNotFound)

	list, err = s.projects.GetUserProjects(s.ctx, s.member.ID)
	s.Require().NoError(err)
	s.Len(list, 1)
	members, err = s.members.GetProjectMembers(s.ctx, projectID, s.member.ID)
	s.Require().NoError(err)
	s.Require().Len(members, 2)
	s.Equal("owner", members[0].User.Username)
	s.Equal("member", members[1].User.Username)

	// Warm the member's detail view, then remove them.
	_, err = s.projects.GetProjectByID(s.ctx, projectID, s.member.ID)
	s.Require().NoError(err)
	_, err = s.tasks.GetProjectTasks(s.ctx, projectID, s.member.ID)
	s.Require().NoError(err)

	s.Require().NoError(s.members.RemoveUserFromProject(s.ctx, projectID, s.member.ID, s.owner.ID))
	s.ErrorIs(s.members.RemoveUserFromProject(s.ctx, projectID, s.member.ID, s.owner.ID), services.ErrProjectMemberNotFound)

	_, err = s.projects.GetProjectByID(s.ctx, projectID, s.member.ID)
	s.ErrorIs(err, services.ErrProjectNotFound)
	_, err = s.tasks.GetProjectTasks(s.ctx, projectID, s.member.ID)
	s.ErrorIs(err, services.ErrProjectNotFound)
	list, err = s.projects.GetUserProjects(s.ctx, s.member.ID)
	s.Require().NoError(err)
	s.Empty(list)
	members, err = s.members.GetProjectMembers(s.ctx, projectID, s.owner.ID)
	s.Require().NoError(err)
	s.Len(members, 1)
}

// racingProjectRepository runs afterRead once, between the store read and the
// cache fill of the next FindForUser.
type racingProjectRepository struct {
	repository.ProjectRepository
	afterRead func()
}

func (r *racingProjectRepository) FindForUser(ctx context.Context, projectID, userID uuid.UUID, level access.Level) (*models.Project, error) {
	project, err := r.ProjectRepository.FindForUser(ctx, projectID, userID, level)
	if r.afterRead != nil {
		hook := r.afterRead
		r.afterRead = nil
		hook()
	}
	return project, err
}

func (s *ServicesTestSuite) TestRemovalDuringReadDoesNotCacheAccess() {
	projectID := s.sharedProject("Apollo")

	repo := &racingProjectRepository{ProjectRepository: repository.NewProjectRepository(s.db)}
	racing := services.NewProjectService(repo, repository.NewMemberRepository(s.db), s.cache, testutil.NullLogger())
	repo.afterRead = func() {
		s.Require().NoError(s.members.RemoveUserFromProject(s.ctx, projectID, s.member.ID, s.owner.ID))
	}

	// The read started while the user was still a member.
	_, err := racing.GetProjectByID(s.ctx, projectID, s.member.ID)
	s.Require().NoError(err)
	s.False(s.mr.Exists(cache.ProjectKey(projectID, s.member.ID)))

	_, err = racing.GetProjectByID(s.ctx, projectID, s.member.ID)
	s.ErrorIs(err, services.ErrProjectNotFound)
}

func (s *ServicesTestSuite) TestRemoveMemberRules() {
	projectID := s.sharedProject("Apollo")
	s.Require().NoError(s.members.AddUserToProject(s.ctx, projectID, s.outsider.ID, s.owner.ID))

	s.ErrorIs(s.members.RemoveUserFromProject(s.ctx, projectID, s.owner.ID, s.owner.ID), services.ErrCannotRemoveOwner)
	s.ErrorIs(s.members.RemoveUserFromProject(s.ctx, projectID, s.owner.ID, s.member.ID), services.ErrProjectMemberNotFound)
	s.ErrorIs(s.members.RemoveUserFromProject(s.ctx, projectID, s.outsider.ID, s.member.ID), services.ErrProjectMemberNotFound)

	// Members may leave on their own.
	s.Require().NoError(s.members.RemoveUserFromProject(s.ctx, projectID, s.member.ID, s.member.ID))
	s.ErrorIs(s.members.RemoveUserFromProject(s.ctx, projectID, s.member.ID, s.member.ID), services.ErrProjectMemberNotFound)
}

func (s *ServicesTestSuite) TestSearchUsers() {
	_, _, err := s.members.SearchUsers(s.ctx, "ow", utils.FirstPage(10))
	s.ErrorIs(err, services.ErrSearchTermTooShort)

	users, total, err := s.members.SearchUsers(s.ctx, "own", utils.FirstPage(10))
	s.Require().NoError(err)
	s.EqualValues(1, total)
	s.Require().Len(users, 1)
	s.Equal(s.owner.ID, users[0].ID)

	users, _, err = s.members.SearchUsers(s.ctx, "zzz", utils.FirstPage(10))
	s.Require().NoError(err)
	s.Empty(users)
}

func (s *ServicesTestSuite) TestValidation() {
	_, err := s.projects.CreateProject(s.ctx, services.CreateProjectInput{Name: "   "}, s.owner.ID)
	s.ErrorIs(err, services.ErrInvalidProjectName)

	projectID := s.sharedProject("Apollo")
	err = s.projects.UpdateProjectStatus(s.ctx, services.UpdateProjectStatusInput{ProjectID: projectID, Status: "Paused"}, s.owner.ID)
	s.ErrorIs(err, services.ErrInvalidStatus)

	_, err = s.tasks.AddTask(s.ctx, services.AddTaskInput{ProjectID: projectID, Title: "task", Priority: "Urgent"}, s.owner.ID)
	s.ErrorIs(err, services.ErrInvalidPriority)
}

// The store stays authoritative while the cache backend is down.
func (s *ServicesTestSuite) TestCacheOutageFallsBackToStore() {
	projectID := s.sharedProject("Apollo")
	s.mr.SetError("ERR simulated outage")

	s.addTask(projectID, "first task")
	project, err := s.projects.GetProjectByID(s.ctx, projectID, s.member.ID)
	s.Require().NoError(err)
	s.Len(project.Tasks, 1)

	list, err := s.projects.GetUserProjects(s.ctx, s.member.ID)
	s.Require().NoError(err)
	s.Len(list, 1)
}

// Invalidation still happens when the caller's context is cancelled after the write.
func (s *ServicesTestSuite) TestInvalidationSurvivesCancelledContext() {
	projectID := s.sharedProject("Apollo")
	taskID := s.addTask(projectID, "first task")
	for _, u := range []uuid.UUID{s.owner.ID, s.member.ID} {
		_, err := s.projects.GetProjectByID(s.ctx, projectID, u)
		s.Require().NoError(err)
		s.True(s.mr.Exists(cache.ProjectKey(projectID, u)))
	}

	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()
	repo := &cancelAfterWrite{TaskRepository: repository.NewTaskRepository(s.db), cancel: cancel}
	tasks := services.NewTaskService(repo, repository.NewMemberRepository(s.db), access.NewChecker(s.db),
		testutil.CacheAt(s.T(), s.mr, 30*time.Minute), nil, testutil.NullLogger())

	s.Require().NoError(tasks.DoTask(ctx, services.DoTaskInput{TaskID: taskID, ProjectID: projectID, IsDone: true}, s.member.ID))
	s.Error(ctx.Err())
	s.False(s.mr.Exists(cache.ProjectKey(projectID, s.member.ID)))
	s.False(s.mr.Exists(cache.ProjectKey(projectID, s.owner.ID)))
}

// cancelAfterWrite cancels the request context once the write has committed.
type cancelAfterWrite struct {
	repository.TaskRepository
	cancel context.CancelFunc
}

func (r *cancelAfterWrite) SetDone(ctx context.Context, taskID, projectID, userID uuid.UUID, isDone bool, at time.Time) (int64, error) {
	affected, err := r.TaskRepository.SetDone(ctx, taskID, projectID, userID, isDone, at)
	r.cancel()
	return affected, err
}

func (s *ServicesTestSuite) TestGenerateTasks() {
	projectID := s.sharedProject("Apollo")
	long := make([]byte, 600)
	for i := range long {
		long[i] = 'x'
	}
	s.generator.tasks = []services.GeneratedTask{
		{Title: "Write report", Description: string(long), Priority: "High"},
		{Title: "no", Priority: "Low"},
		{Title: "Call the client", Priority: "Whenever"},
	}

	created, err := s.tasks.GenerateTasks(s.ctx, services.GenerateTasksInput{ProjectID: projectID, Text: "do things"}, s.owner.ID)
	s.Require().NoError(err)
	s.Require().Len(created, 2)
	s.Equal("Write report", created[0].Title)
	s.Len(created[0].Description, 500)
	s.Equal(models.TaskPriorityHigh, created[0].Priority)
	s.Equal(models.TaskPriorityMedium, created[1].Priority)

	calls := s.generator.calls
	_, err = s.tasks.GenerateTasks(s.ctx, services.GenerateTasksInput{ProjectID: projectID, Text: "do things"}, s.member.ID)
	s.ErrorIs(err, services.ErrProjectNotFound)
	s.Equal(calls, s.generator.calls)

	s.generator.tasks = []services.GeneratedTask{{Title: "x"}}
	_, err = s.tasks.GenerateTasks(s.ctx, services.GenerateTasksInput{ProjectID: projectID, Text: "do things"}, s.owner.ID)
	s.ErrorIs(err, services.ErrNoTasksGenerated)

	s.generator.err = fmt.Errorf("upstream down")
	_, err = s.tasks.GenerateTasks(s.ctx, services.GenerateTasksInput{ProjectID: projectID, Text: "do things"}, s.owner.ID)
	s.ErrorContains(err, "upstream down")
}

func TestGenerateTasksWithoutGenerator(t *testing.T) {
	db := testutil.NewDB(t)
	svc := services.NewTaskService(repository.NewTaskRepository(db), repository.NewMemberRepository(db), access.NewChecker(db), nil, nil, nil)

	_, err := svc.GenerateTasks(context.Background(), services.GenerateTasksInput{ProjectID: uuid.New(), Text: "anything"}, uuid.New())
	require.ErrorIs(t, err, services.ErrAIServiceUnavailable)
}

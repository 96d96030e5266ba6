package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/project-management-api/internal/auth"
	"github.com/yukikurage/project-management-api/internal/handlers"
	"github.com/yukikurage/project-management-api/internal/middleware"
)

type Deps struct {
	Tokens         *auth.TokenManager
	AuthHandler    *handlers.AuthHandler
	ProjectHandler *handlers.ProjectHandler
	TaskHandler    *handlers.TaskHandler
	MemberHandler  *handlers.MemberHandler
}

// Setup registers all routes on r. The session middleware must already be installed.
func Setup(r *gin.Engine, deps Deps) {
	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Project Management API is running",
		})
	})

	api := r.Group("/api")

	// Account routes
	account := api.Group("/account")
	{
		account.POST("/register", deps.AuthHandler.Register)
		account.POST("/login", deps.AuthHandler.Login)
		account.POST("/logout", deps.AuthHandler.Logout)
		account.GET("/me", middleware.RequireAuth(deps.Tokens), deps.AuthHandler.GetCurrentUser)
	}

	authed := api.Group("")
	authed.Use(middleware.RequireAuth(deps.Tokens))
	{
		authed.GET("/users/search", deps.MemberHandler.SearchUsers)

		authed.GET("/projects", deps.ProjectHandler.ListProjects)
		authed.POST("/projects", deps.ProjectHandler.CreateProject)

		project := authed.Group("/projects/:id")
		project.Use(middleware.RequireUUIDParam("id", middleware.ContextKeyProjectID))
		{
			project.GET("", deps.ProjectHandler.GetProject)
			project.PUT("", deps.ProjectHandler.UpdateProject)
			project.PUT("/status", deps.ProjectHandler.UpdateProjectStatus)
			project.DELETE("", deps.ProjectHandler.DeleteProject)

			project.GET("/tasks", deps.TaskHandler.ListTasks)
			project.POST("/tasks", deps.TaskHandler.CreateTask)
			project.POST("/tasks/generate", deps.TaskHandler.GenerateTasks)

			taskID := middleware.RequireUUIDParam("task_id", middleware.ContextKeyTaskID)
			project.PUT("/tasks/:task_id", taskID, deps.TaskHandler.UpdateTask)
			project.PUT("/tasks/:task_id/done", taskID, deps.TaskHandler.DoTask)
			project.DELETE("/tasks/:task_id", taskID, deps.TaskHandler.DeleteTask)

			project.GET("/members", deps.MemberHandler.ListMembers)
			project.POST("/members", deps.MemberHandler.AddMember)
			project.DELETE("/members/:user_id",
				middleware.RequireUUIDParam("user_id", middleware.ContextKeyMemberID),
				deps.MemberHandler.RemoveMember)
		}
	}
}

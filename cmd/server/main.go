package main

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/yukikurage/project-management-api/internal/access"
	"github.com/yukikurage/project-management-api/internal/auth"
	"github.com/yukikurage/project-management-api/internal/cache"
	"github.com/yukikurage/project-management-api/internal/config"
	"github.com/yukikurage/project-management-api/internal/constants"
	"github.com/yukikurage/project-management-api/internal/database"
	"github.com/yukikurage/project-management-api/internal/handlers"
	"github.com/yukikurage/project-management-api/internal/logging"
	"github.com/yukikurage/project-management-api/internal/repository"
	"github.com/yukikurage/project-management-api/internal/router"
	"github.com/yukikurage/project-management-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logging.Init(cfg.LogLevel, cfg.LogFile)
	log := logging.Logger

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("Failed to run migrations")
	}

	// Redis backs the view cache; without it every read goes to the database.
	var redisClient *redis.Client
	if addr := cfg.RedisAddr(); addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
	}
	viewCache := cache.New(redisClient, cfg.CacheTTL, log)

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery(), gin.LoggerWithWriter(log.Writer()))

	// Setup session middleware, in redis when configured
	var store sessions.Store
	if addr := cfg.RedisAddr(); addr != "" {
		store, err = redisStore.NewStore(
			10,    // Redis pool size
			"tcp", // network type
			addr,
			"", // username (empty for default user)
			cfg.RedisPassword,
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			log.WithError(err).Fatal("Failed to create Redis session store")
		}
	} else {
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	}
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.GinMode == gin.ReleaseMode,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize AI service
	var generator services.TaskGenerator
	if cfg.OpenAIAPIKey != "" {
		generator = services.NewAIService(cfg.OpenAIAPIKey)
	}

	// Initialize repositories and services
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	checker := access.NewChecker(db)

	authService := services.NewAuthService(userRepo, log)
	projectService := services.NewProjectService(projectRepo, memberRepo, viewCache, log)
	taskService := services.NewTaskService(taskRepo, memberRepo, checker, viewCache, generator, log)
	membershipService := services.NewMembershipService(userRepo, memberRepo, checker, viewCache, log)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTExpireHours)

	router.Setup(r, router.Deps{
		Tokens:         tokens,
		AuthHandler:    handlers.NewAuthHandler(authService, tokens),
		ProjectHandler: handlers.NewProjectHandler(projectService),
		TaskHandler:    handlers.NewTaskHandler(taskService),
		MemberHandler:  handlers.NewMemberHandler(membershipService),
	})

	// Start server
	log.WithField("addr", cfg.HTTPAddr).Info("Server starting")
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.WithError(err).Fatal("Failed to start server")
	}
}

// Package testutil provides the in-memory database and cache used across package tests.
package testutil

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yukikurage/project-management-api/internal/cache"
	"github.com/yukikurage/project-management-api/internal/database"
	"github.com/yukikurage/project-management-api/internal/models"
)

// NewDB returns a migrated in-memory sqlite database. The pool is pinned to one
// connection because every sqlite :memory: connection is a separate database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// NewCache starts a miniredis server and returns a cache bound to it.
func NewCache(t *testing.T, ttl time.Duration) (*cache.Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	return CacheAt(t, mr, ttl), mr
}

// CacheAt returns a cache bound to an already running miniredis server.
func CacheAt(t *testing.T, mr *miniredis.Miniredis, ttl time.Duration) *cache.Cache {
	t.Helper()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	return cache.New(client, ttl, NullLogger())
}

func NullLogger() *logrus.Logger {
	l, _ := test.NewNullLogger()
	return l
}

// CreateUser inserts a user with a throwaway password hash.
func CreateUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "not-a-real-hash",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateProject inserts a project owned by owner together with the owner's membership.
func CreateProject(t *testing.T, db *gorm.DB, owner *models.User, name string) *models.Project {
	t.Helper()
	now := time.Now().UTC()
	project := &models.Project{
		OwnerID:     owner.ID,
		Name:        name,
		Status:      models.ProjectStatusInProgress,
		CreatedTime: now,
	}
	require.NoError(t, db.Omit("Owner").Create(project).Error)
	AddMember(t, db, project, owner)
	return project
}

func AddMember(t *testing.T, db *gorm.DB, project *models.Project, user *models.User) {
	t.Helper()
	require.NoError(t, db.Omit("User").Create(&models.ProjectMember{
		UserID:    user.ID,
		ProjectID: project.ID,
		JoinedAt:  time.Now().UTC(),
	}).Error)
}

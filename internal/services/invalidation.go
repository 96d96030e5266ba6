package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yukikurage/project-management-api/internal/cache"
	"github.com/yukikurage/project-management-api/internal/repository"
)

type view int

const (
	userProjectsView view = iota
	projectView
	projectTasksView
	projectMembersView
)

// invalidator removes the cached views a committed write made stale, for every
// member of the affected project. It runs detached from the request context so
// a cancelled caller cannot skip invalidation after the write has committed.
type invalidator struct {
	cache   *cache.Cache
	members repository.MemberRepository
	logger  logrus.FieldLogger
}

// project invalidates views of projectID for its current members plus extra users.
func (i invalidator) project(ctx context.Context, projectID uuid.UUID, extra []uuid.UUID, views ...view) {
	ctx = context.WithoutCancel(ctx)

	userIDs, err := i.members.ListUserIDs(ctx, projectID)
	if err != nil {
		i.logger.WithError(err).WithField("project_id", projectID).
			Error("Failed to list members for cache invalidation, invalidating known users only")
	}
	i.remove(ctx, projectID, append(userIDs, extra...), views...)
}

// users invalidates views of projectID for exactly userIDs.
func (i invalidator) users(ctx context.Context, projectID uuid.UUID, userIDs []uuid.UUID, views ...view) {
	i.remove(context.WithoutCancel(ctx), projectID, userIDs, views...)
}

func (i invalidator) remove(ctx context.Context, projectID uuid.UUID, userIDs []uuid.UUID, views ...view) {
	keys := make([]string, 0, len(userIDs)*len(views)+1)
	for _, v := range views {
		if v == projectMembersView {
			keys = append(keys, cache.ProjectMembersKey(projectID))
			continue
		}
		for _, userID := range userIDs {
			switch v {
			case userProjectsView:
				keys = append(keys, cache.UserProjectsKey(userID))
			case projectView:
				keys = append(keys, cache.ProjectKey(projectID, userID))
			case projectTasksView:
				keys = append(keys, cache.ProjectTasksKey(projectID, userID))
			}
		}
	}

	i.logger.WithFields(logrus.Fields{
		"project_id": projectID,
		"keys":       len(keys),
	}).Debug("Invalidating cached views")
	i.cache.Remove(ctx, keys...)
}

func orStandardLogger(logger logrus.FieldLogger) logrus.FieldLogger {
	if logger == nil {
		return logrus.StandardLogger()
	}
	return logger
}

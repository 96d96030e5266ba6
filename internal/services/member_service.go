package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/yukikurage/project-management-api/internal/access"
	"github.com/yukikurage/project-management-api/internal/cache"
	"github.com/yukikurage/project-management-api/internal/constants"
	"github.com/yukikurage/project-management-api/internal/dto"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/repository"
	"github.com/yukikurage/project-management-api/internal/utils"
)

// MembershipService provides business logic for project membership.
type MembershipService struct {
	userRepo   repository.UserRepository
	memberRepo repository.MemberRepository
	checker    *access.Checker
	cache      *cache.Cache
	invalidate invalidator
	logger     logrus.FieldLogger
	now        func() time.Time
}

// NewMembershipService creates a new MembershipService.
func NewMembershipService(
	userRepo repository.UserRepository,
	memberRepo repository.MemberRepository,
	checker *access.Checker,
	c *cache.Cache,
	logger logrus.FieldLogger,
) *MembershipService {
	logger = orStandardLogger(logger)
	return &MembershipService{
		userRepo:   userRepo,
		memberRepo: memberRepo,
		checker:    checker,
		cache:      c,
		invalidate: invalidator{cache: c, members: memberRepo, logger: logger},
		logger:     logger,
		now:        time.Now,
	}
}

// SearchUsers finds users whose username starts with term.
func (s *MembershipService) SearchUsers(ctx context.Context, term string, page utils.Page) ([]dto.UserDTO, int64, error) {
	term = strings.TrimSpace(term)
	if utf8.RuneCountInString(term) < constants.MinSearchTermLength {
		return nil, 0, ErrSearchTermTooShort
	}

	users, total, err := s.userRepo.SearchByUsernamePrefix(ctx, term, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search users: %w", err)
	}
	return dto.ToUserDTOs(users), total, nil
}

// AddUserToProject adds targetID to a project owned by actorID.
func (s *MembershipService) AddUserToProject(ctx context.Context, projectID, targetID, actorID uuid.UUID) error {
	owner, err := s.checker.IsOwner(ctx, actorID, projectID)
	if err != nil {
		return fmt.Errorf("failed to check project access: %w", err)
	}
	if !owner {
		s.logDenied(projectID, actorID, "add member")
		return ErrProjectNotFound
	}

	if _, err := s.userRepo.FindByID(ctx, targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if _, err := s.memberRepo.Find(ctx, projectID, targetID); err == nil {
		return ErrAlreadyProjectMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check membership: %w", err)
	}

	member := &models.ProjectMember{
		UserID:    targetID,
		ProjectID: projectID,
		JoinedAt:  s.now().UTC(),
	}
	if err := s.memberRepo.Add(ctx, member); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyProjectMember
		}
		return fmt.Errorf("failed to add member: %w", err)
	}

	s.invalidate.users(ctx, projectID, []uuid.UUID{targetID},
		userProjectsView, projectView, projectTasksView, projectMembersView)

	s.logger.WithFields(logrus.Fields{
		"project_id": projectID,
		"user_id":    targetID,
		"added_by":   actorID,
	}).Info("Member added to project")
	return nil
}

// GetProjectMembers lists the members of a project actorID is a member of.
func (s *MembershipService) GetProjectMembers(ctx context.Context, projectID, actorID uuid.UUID) ([]dto.MemberDTO, error) {
	// The members view is shared by all members, so access is checked before the cache.
	member, err := s.checker.IsMember(ctx, actorID, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to check project access: %w", err)
	}
	if !member {
		s.logDenied(projectID, actorID, "list members")
		return nil, ErrProjectNotFound
	}

	key := cache.ProjectMembersKey(projectID)
	if members, ok := cache.Get[[]dto.MemberDTO](ctx, s.cache, key); ok {
		return members, nil
	}
	ticket := s.cache.Ticket(ctx, key)

	members, err := s.memberRepo.ListWithUsers(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	views := dto.ToMemberDTOs(members)
	s.cache.Fill(ctx, ticket, views)
	return views, nil
}

// RemoveUserFromProject removes targetID from a project. The owner may remove
// any other member, and any member may remove themself. The owner cannot leave.
func (s *MembershipService) RemoveUserFromProject(ctx context.Context, projectID, targetID, actorID uuid.UUID) error {
	owner, err := s.checker.IsOwner(ctx, actorID, projectID)
	if err != nil {
		return fmt.Errorf("failed to check project access: %w", err)
	}

	switch {
	case owner && targetID == actorID:
		return ErrCannotRemoveOwner
	case !owner && targetID != actorID:
		s.logDenied(projectID, actorID, "remove member")
		return ErrProjectMemberNotFound
	}

	affected, err := s.memberRepo.Remove(ctx, projectID, targetID)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	if affected == 0 {
		return ErrProjectMemberNotFound
	}

	s.invalidate.users(ctx, projectID, []uuid.UUID{targetID},
		userProjectsView, projectView, projectTasksView, projectMembersView)

	s.logger.WithFields(logrus.Fields{
		"project_id": projectID,
		"user_id":    targetID,
		"removed_by": actorID,
	}).Info("Member removed from project")
	return nil
}

func (s *MembershipService) logDenied(projectID, actorID uuid.UUID, action string) {
	s.logger.WithFields(logrus.Fields{
		"project_id": projectID,
		"user_id":    actorID,
		"action":     action,
	}).Warn("Project not found or not accessible")
}

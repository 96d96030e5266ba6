package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/yukikurage/project-management-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// AccountDTO represents the authenticated user's own account
type AccountDTO struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Roles    []string  `json:"roles"`
}

// AuthTokenDTO is returned on login
type AuthTokenDTO struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	User      AccountDTO `json:"user"`
}

// MemberDTO represents a project member in API responses
type MemberDTO struct {
	User     UserDTO   `json:"user"`
	JoinedAt time.Time `json:"joined_at"`
}

// ToUserDTO converts a user model to DTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
	}
}

// ToUserDTOs converts a slice of users, returning an empty slice for none
func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, user := range users {
		dtos[i] = ToUserDTO(user)
	}
	return dtos
}

// ToAccountDTO converts a user model with its role names to DTO
func ToAccountDTO(user models.User, roles []string) AccountDTO {
	if roles == nil {
		roles = []string{}
	}
	return AccountDTO{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Roles:    roles,
	}
}

// ToMemberDTO converts a membership with its preloaded user to DTO
func ToMemberDTO(member models.ProjectMember) MemberDTO {
	return MemberDTO{
		User:     ToUserDTO(member.User),
		JoinedAt: member.JoinedAt,
	}
}

func ToMemberDTOs(members []models.ProjectMember) []MemberDTO {
	dtos := make([]MemberDTO, len(members))
	for i, member := range members {
		dtos[i] = ToMemberDTO(member)
	}
	return dtos
}

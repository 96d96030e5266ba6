package services

import "errors"

// Not-found errors also cover rows that exist but are outside the caller's reach.
var (
	ErrProjectNotFound       = errors.New("project not found")
	ErrTaskNotFound          = errors.New("task not found")
	ErrProjectMemberNotFound = errors.New("project member not found")
	ErrUserNotFound          = errors.New("user not found")
)

var (
	ErrInvalidProjectName    = errors.New("project name cannot be empty")
	ErrInvalidStatus         = errors.New("invalid project status")
	ErrInvalidTaskTitle      = errors.New("task title cannot be empty")
	ErrInvalidPriority       = errors.New("invalid task priority")
	ErrSearchTermTooShort    = errors.New("search term too short")
	ErrAlreadyProjectMember  = errors.New("user is already a member of this project")
	ErrCannotRemoveOwner     = errors.New("the project owner cannot be removed from the project")
	ErrAIServiceUnavailable  = errors.New("AI service is not configured")
	ErrNoTasksGenerated      = errors.New("no valid tasks could be generated from the text")
	ErrInvalidGenerationText = errors.New("text cannot be empty")
)

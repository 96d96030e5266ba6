package constants

import "time"

const (
	// ContextKeyUserID is the gin context and session key holding the acting user ID.
	ContextKeyUserID = "user_id"
	// SessionCookieName is the name of the browser session cookie.
	SessionCookieName = "project_session"

	MinPasswordLength   = 5
	MinSearchTermLength = 3

	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 50

	// DefaultCacheTTL is the absolute expiration applied to cached views.
	DefaultCacheTTL = 30 * time.Minute

	MaxAIGeneratedTasks = 20
)

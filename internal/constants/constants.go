package constants

// Context and session keys
const (
	ContextKeyPrincipal = "principal"
	SessionKeyUserID    = "user_id"
	SessionCookieName   = "task_session"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Validation
const (
	MinPasswordLength = 6
	// MaxPasswordLength is the bcrypt input limit in bytes.
	MaxPasswordLength = 72
	MinNameLength     = 3
	MinJWTSecretLen   = 32
)

package user

import "time"

// CacheSchemaVersion is the current version of the cache schema
// Increment this when the cached data structure changes to auto-invalidate old entries
const CacheSchemaVersion = "1.0"

// Cache configuration
const (
	DefaultCacheSize = 1000
	DefaultCacheTTL  = 30 * time.Second
)

// Validation limits
const (
	MaxUserIDLength      = 128
	MaxDisplayNameLength = 64
)

// Error messages
const (
	ErrMsgUserIDRequired      = "user id is required"
	ErrMsgUserIDTooLongFmt    = "user id longer than %d characters"
	ErrMsgDisplayNameTooLong  = "display name longer than %d characters"
	ErrMsgUnknownSkillFmt     = "unknown skill %q"
	ErrMsgCreateProfileFailed = "failed to create profile"
	ErrMsgGetProfileFailed    = "failed to load profile"
	ErrMsgGetSkillsFailed     = "failed to load skills"
	ErrMsgGrantSkillFailed    = "failed to grant skill"
)

// Log messages
const (
	LogMsgProfileCreated = "Profile created"
	LogMsgSkillGranted   = "Skill granted"
	LogMsgSkillKnown     = "Skill already unlocked"
)

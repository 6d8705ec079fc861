package ratelimit

import "time"

// Defaults
const (
	DefaultRequests       = 120
	DefaultWindow         = time.Minute
	DefaultMemoryKeys     = 10000
	RedisKeyPrefix        = "habitquest:ratelimit:"
	HeaderRetryAfter      = "Retry-After"
	HeaderRateLimit       = "X-RateLimit-Limit"
	HeaderRateLimitRemain = "X-RateLimit-Remaining"
)

// Error and log messages
const (
	ErrMsgTooManyRequests = "Too Many Requests"
	ErrMsgRedisHitFailed  = "failed to record hit in redis"
	LogMsgStoreFailed     = "Rate limit store unavailable, allowing request"
	LogMsgLimited         = "Rate limit exceeded"
)

package server

import "time"

// Failure kinds and details written by middleware
const (
	KindUnauthorized   = "unauthorized"
	ErrMsgUnauthorized = "Missing or invalid API key"
)

// Security alert message templates
const (
	SecurityAlertFailedAuth = "⚠️ SECURITY ALERT: Multiple failed authentication attempts"
)

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting   = "Server starting"
	LogMsgRequestStarted   = "Request started"
	LogMsgRequestCompleted = "Request completed"
	LogMsgRequestHeaders   = "Request headers"
	LogMsgAuthFailed       = "Authentication failed"
)

// HTTP header names
const (
	HeaderAPIKey         = "X-API-Key"
	HeaderAuthorization  = "Authorization"
	HeaderForwardedFor   = "X-Forwarded-For"
	HeaderContentType    = "X-Content-Type-Options"
	HeaderFrameOptions   = "X-Frame-Options"
	HeaderXSSProtection  = "X-XSS-Protection"
	HeaderReferrerPolicy = "Referrer-Policy"
)

// Security header values
const (
	HeaderValueNoSniff              = "nosniff"
	HeaderValueSameOrigin           = "SAMEORIGIN"
	HeaderValueXSSBlock             = "1; mode=block"
	HeaderValueReferrerStrictOrigin = "strict-origin-when-cross-origin"
)

// Server limits
const (
	MaxRequestBytes     = 1 << 20
	RequestTimeout      = 30 * time.Second
	ReadHeaderTimeout   = 5 * time.Second
	CORSMaxAge          = 300
	FailedAuthThreshold = 5
	FailedAuthWindow    = 5 * time.Minute
)

// PublicPaths bypass authentication. The Stripe webhook authenticates by
// signature instead of API key.
var PublicPaths = []string{
	"/swagger/",
	"/healthz",
	"/readyz",
	"/metrics",
	"/version",
	"/api/v1/webhooks/",
}

// RedactedValue replaces secret header values in logs
const RedactedValue = "[REDACTED]"

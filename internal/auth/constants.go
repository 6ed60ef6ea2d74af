package auth

import "time"

const (
	// CookieName is the session credential cookie read by the gate.
	CookieName = "admin_token"
	CookiePath = "/"
	CookieTTL  = 24 * time.Hour

	ContextKeyCredential = "credential"
	ContextKeySessionID  = "session_id"

	headerAuthorization = "Authorization"
	bearerScheme        = "Bearer"

	maxCredentialLength = 4096
	tokenIssuer         = "shree-admin"
)

const (
	msgCredentialMissing       = "session credential missing"
	msgInvalidCredentials      = "Invalid credentials"
	msgUnexpectedSigningMethod = "unexpected signing method: %v"
	msgTokenParseFailed        = "failed to parse token: %w"
	msgInvalidTokenClaims      = "invalid token claims"
	msgTokenSignFailed         = "failed to sign session token"
)

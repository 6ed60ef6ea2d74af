package auth

import (
	"context"
	"strings"

	apperrors "shree-admin/pkg/errors"
	"shree-admin/pkg/password"
)

// Pre-computed bcrypt hash (cost 12) used to equalize timing when the
// username does not match.
const dummyBcryptHash = "$2a$12$dWR5CQpS4zNHLavLSIr4o.P6QDQEUJKv7mJ7WekUHHqyRSRMJzH0S"

// Authenticator exchanges admin credentials for a session token.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// LocalAuthenticator checks a single configured admin account and issues
// signed tokens itself, for deployments whose backend has no login endpoint.
type LocalAuthenticator struct {
	username     string
	passwordHash string
	tokens       *TokenService
}

func NewLocalAuthenticator(username, passwordHash string, tokens *TokenService) *LocalAuthenticator {
	return &LocalAuthenticator{
		username:     username,
		passwordHash: passwordHash,
		tokens:       tokens,
	}
}

func (a *LocalAuthenticator) Login(_ context.Context, username, pass string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || pass == "" {
		password.Verify("", dummyBcryptHash)
		return "", apperrors.Unauthorized(msgInvalidCredentials)
	}

	if !ConstantTimeCompareStrings(username, a.username) {
		password.Verify(pass, dummyBcryptHash)
		return "", apperrors.Unauthorized(msgInvalidCredentials)
	}

	if !password.Verify(pass, a.passwordHash) {
		return "", apperrors.Unauthorized(msgInvalidCredentials)
	}

	token, err := a.tokens.Generate(a.username)
	if err != nil {
		return "", apperrors.InternalServer(msgTokenSignFailed, err)
	}
	return token, nil
}

package authclient

import (
	"context"
	"fmt"
	"time"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// TokenPair holds the credentials issued together on login. Either side may
// be empty when read back from the store: a refresh token can outlive its
// access token.
type TokenPair struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`
}

// CredentialStore persists credentials in the storage medium for the current
// request. Writes are scoped, deletes are idempotent, and implementations do
// no networking.
type CredentialStore interface {
	Get(name string) string
	Set(name, value string, maxAge time.Duration)
	Delete(name string)
}

// TokenRefresher mints a new access token from a refresh token.
type TokenRefresher interface {
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

// SessionEnder invalidates a refresh token server side. Best effort; local
// credentials are cleared regardless of the outcome.
type SessionEnder interface {
	Logout(ctx context.Context, refreshToken string) error
}

// TokenEndpoint is the slice of the identity service the SessionManager
// needs. *Client satisfies it.
type TokenEndpoint interface {
	TokenRefresher
	SessionEnder
}

// Config holds session options
type Config interface {
	GetBaseURL() string
	GetAccessCookieName() string
	GetRefreshCookieName() string
	GetAccessTokenTTL() time.Duration
	GetRefreshTokenTTL() time.Duration
	GetCookiePath() string
	GetSecureCookies() bool
	GetLoginRoute() string
	GetReturnToCookie() string
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTHCLIENT "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] AUTHCLIENT "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTHCLIENT "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTHCLIENT "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}

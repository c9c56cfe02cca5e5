package authclient

import (
	"context"
	"time"

	"github.com/goliatone/go-errors"
	"golang.org/x/sync/singleflight"
)

// SessionManager owns the credential lifecycle: it is the only writer of the
// CredentialStore. The guard and bearer-attaching code read it, nothing else
// mutates it.
type SessionManager struct {
	tokens     TokenEndpoint
	cfg        Config
	accessTTL  time.Duration
	refreshTTL time.Duration
	Logger     Logger
	now        func() time.Time
	flight     singleflight.Group
}

type SessionManagerOption func(*SessionManager)

// WithSessionLogger replaces the default logger.
func WithSessionLogger(logger Logger) SessionManagerOption {
	return func(m *SessionManager) {
		if logger != nil {
			m.Logger = logger
		}
	}
}

// WithSessionClock injects a custom clock (useful for tests).
func WithSessionClock(clock func() time.Time) SessionManagerOption {
	return func(m *SessionManager) {
		if clock != nil {
			m.now = clock
		}
	}
}

// NewSessionManager wires the manager to the identity service endpoints and
// the cookie configuration.
func NewSessionManager(tokens TokenEndpoint, cfg Config, opts ...SessionManagerOption) (*SessionManager, error) {
	if tokens == nil {
		return nil, errors.New("token endpoint is required", errors.CategoryBadInput).
			WithCode(errors.CodeBadRequest)
	}

	m := &SessionManager{
		tokens:     tokens,
		cfg:        cfg,
		accessTTL:  cfg.GetAccessTokenTTL(),
		refreshTTL: cfg.GetRefreshTokenTTL(),
		Logger:     defLogger{},
		now:        time.Now,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	return m, nil
}

// HasSession reports whether an access token is present. Presence only: it
// never attempts a refresh, so it is cheap enough for the guard and for
// conditional UI.
func (m *SessionManager) HasSession(store CredentialStore) bool {
	return store.Get(m.cfg.GetAccessCookieName()) != ""
}

// SessionTokens reads both credentials. Either side may be empty: an access
// cookie expires before its refresh cookie.
func (m *SessionManager) SessionTokens(store CredentialStore) TokenPair {
	return TokenPair{
		AccessToken:  store.Get(m.cfg.GetAccessCookieName()),
		RefreshToken: store.Get(m.cfg.GetRefreshCookieName()),
	}
}

// EstablishSession stores both tokens after a successful login. The access
// cookie TTL is clamped to the token's own expiry when it parses as a JWT.
func (m *SessionManager) EstablishSession(store CredentialStore, accessToken, refreshToken string) {
	m.storeAccessToken(store, accessToken)
	store.Set(m.cfg.GetRefreshCookieName(), refreshToken, m.refreshTTL)
}

// RefreshAccessToken mints a new access token from the stored refresh token.
// Concurrent callers share a single in-flight network refresh; every caller
// observes the same outcome. On a terminal failure (the identity service
// rejected the refresh token) both credentials are cleared and
// ErrSessionExpired is returned. A transport failure leaves the session
// intact: the refresh token may still be good.
func (m *SessionManager) RefreshAccessToken(ctx context.Context, store CredentialStore) (string, error) {
	refreshToken := store.Get(m.cfg.GetRefreshCookieName())
	if refreshToken == "" {
		return "", ErrNoSession
	}

	// keyed on the refresh token: one flight per session
	v, err, _ := m.flight.Do(refreshToken, func() (any, error) {
		return m.tokens.Refresh(ctx, refreshToken)
	})

	if err != nil {
		if IsNetworkFailure(err) {
			return "", err
		}

		m.Logger.Info("terminal refresh failure, ending session", "error", err)
		m.clearTokens(store)
		return "", errors.Wrap(err, errors.CategoryAuth, "session expired").
			WithTextCode(textCodeSessionExpired).
			WithCode(errors.CodeUnauthorized)
	}

	accessToken, ok := v.(string)
	if !ok || accessToken == "" {
		m.clearTokens(store)
		return "", ErrSessionExpired
	}

	// every waiting caller writes the cookie to its own response
	m.storeAccessToken(store, accessToken)
	return accessToken, nil
}

// EndSession clears both credentials. Server-side invalidation is best
// effort: local clearing happens even when the network call fails, the user
// is never left stuck logged in.
func (m *SessionManager) EndSession(ctx context.Context, store CredentialStore) {
	refreshToken := store.Get(m.cfg.GetRefreshCookieName())
	if refreshToken != "" {
		if err := m.tokens.Logout(ctx, refreshToken); err != nil {
			m.Logger.Warn("server-side logout failed", "error", err)
		}
	}

	m.clearTokens(store)
}

// ConsumeReturnTo reads and clears the rejected-route cookie the guard sets
// before redirecting to login. Returns def when return-to is disabled or
// nothing was recorded.
func (m *SessionManager) ConsumeReturnTo(store CredentialStore, def string) string {
	name := m.cfg.GetReturnToCookie()
	if name == "" {
		return def
	}

	target := store.Get(name)
	if target == "" {
		return def
	}

	store.Delete(name)
	return target
}

func (m *SessionManager) storeAccessToken(store CredentialStore, accessToken string) {
	ttl := accessTokenTTL(accessToken, m.accessTTL, m.now)
	store.Set(m.cfg.GetAccessCookieName(), accessToken, ttl)
}

func (m *SessionManager) clearTokens(store CredentialStore) {
	store.Delete(m.cfg.GetAccessCookieName())
	store.Delete(m.cfg.GetRefreshCookieName())
}

package authclient

import "context"

// AuthorizedFunc performs one authenticated call with the supplied access
// token.
type AuthorizedFunc func(ctx context.Context, accessToken string) error

// Authorized centralizes the refresh-and-retry-once policy so call sites do
// not reimplement it: run fn with the stored access token; if it fails with
// an authorization failure, do one (shared) refresh and retry exactly once.
// Validation and transport failures pass through untouched. When the refresh
// itself fails the session is over and ErrSessionExpired surfaces instead of
// the original failure.
func (m *SessionManager) Authorized(ctx context.Context, store CredentialStore, fn AuthorizedFunc) error {
	err := fn(ctx, store.Get(m.cfg.GetAccessCookieName()))
	if err == nil || !IsAuthorizationFailure(err) {
		return err
	}

	accessToken, refreshErr := m.RefreshAccessToken(ctx, store)
	if refreshErr != nil {
		return refreshErr
	}

	return fn(ctx, accessToken)
}

package authclient

import (
	"time"

	"github.com/goliatone/go-router"
)

var _ CredentialStore = &CookieStore{}

// CookieStore persists credentials as cookies on the current request. The
// security attributes are invariants, not options: HttpOnly always,
// SameSite=Lax, Secure per config. Tokens are never readable by page script.
type CookieStore struct {
	ctx    router.Context
	path   string
	secure bool
}

// NewCookieStore wraps the request's cookie jar.
func NewCookieStore(ctx router.Context, cfg Config) *CookieStore {
	return &CookieStore{
		ctx:    ctx,
		path:   cfg.GetCookiePath(),
		secure: cfg.GetSecureCookies(),
	}
}

func (s *CookieStore) Get(name string) string {
	return s.ctx.Cookies(name)
}

func (s *CookieStore) Set(name, value string, maxAge time.Duration) {
	s.ctx.Cookie(&router.Cookie{
		Name:     name,
		Value:    value,
		Path:     s.path,
		Expires:  time.Now().Add(maxAge),
		HTTPOnly: true,
		Secure:   s.secure,
		SameSite: "Lax",
	})
}

// Delete expires the cookie. Deleting an absent cookie is a no-op.
func (s *CookieStore) Delete(name string) {
	s.ctx.Cookie(&router.Cookie{
		Name:     name,
		Value:    "",
		Path:     s.path,
		Expires:  time.Now().Add(-time.Hour * (24 * 365)),
		HTTPOnly: true,
		Secure:   s.secure,
		SameSite: "Lax",
	})
}

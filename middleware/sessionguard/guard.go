// Package sessionguard gates navigations on the presence of an access
// credential. It runs before any page logic and decides PASS or REDIRECT
// from three inputs only: the request path, whether an access token is
// present, and a static allow-list of public routes.
//
// The guard deliberately does not validate the token. A stale-but-present
// token passes here and fails at the API boundary, where the session
// manager's refresh path takes over. Coarse check here, authoritative check
// there.
package sessionguard

import (
	"net/http"
	"time"

	"github.com/goliatone/go-router"
)

// Access cookie and redirect defaults match the session configuration
// defaults in the root package.
const (
	defaultCookieName = "accessToken"
	defaultLoginPath  = "/auth/login"
)

// Action is a guard outcome.
type Action string

const (
	ActionPass     Action = "pass"
	ActionRedirect Action = "redirect"
)

// Decision is the guard outcome for a single request.
type Decision struct {
	Action Action
	Target string
}

// Decide is the guard's pure core: no side effects, fully determined by its
// inputs. Public routes pass regardless of credential state.
func Decide(path string, hasCredential bool, routes *PublicRouteSet, loginPath string) Decision {
	if routes.Matches(path) {
		return Decision{Action: ActionPass}
	}

	if hasCredential {
		return Decision{Action: ActionPass}
	}

	return Decision{Action: ActionRedirect, Target: loginPath}
}

// CredentialReader is the read-only slice of the credential store the guard
// needs. Mirrors authclient.CredentialStore to keep this package free of an
// upward dependency.
type CredentialReader interface {
	Get(name string) string
}

type Config struct {
	// Filter skips the guard entirely when it returns true (static assets,
	// API mounts handled elsewhere).
	Filter func(router.Context) bool

	// CookieName is the access token cookie. Defaults to "accessToken".
	CookieName string

	// PublicRoutes overrides DefaultPublicRoutes.
	PublicRoutes []string

	// LoginPath is the redirect target. Defaults to "/auth/login".
	LoginPath string

	// ReturnToCookie, when set, records the rejected path in a short-lived
	// cookie before redirecting so the login flow can send the user back.
	ReturnToCookie string

	// InsecureCookies disables the Secure flag on the return-to cookie.
	InsecureCookies bool

	// Store reads credentials for a request. Defaults to the request's own
	// cookie jar.
	Store func(router.Context) CredentialReader

	// SuccessHandler runs on PASS. Defaults to ctx.Next().
	SuccessHandler router.HandlerFunc

	// RedirectHandler runs on REDIRECT. The default issues 302 for GET and
	// 303 otherwise.
	RedirectHandler func(router.Context, Decision) error
}

// New builds the guard middleware.
func New(config ...Config) router.MiddlewareFunc {
	return func(hf router.HandlerFunc) router.HandlerFunc {
		cfg := GetDefaultConfig(config...)
		routes := NewPublicRouteSet(cfg.PublicRoutes...)

		return func(ctx router.Context) error {
			if cfg.Filter != nil && cfg.Filter(ctx) {
				return ctx.Next()
			}

			store := cfg.Store(ctx)
			hasCredential := store.Get(cfg.CookieName) != ""

			decision := Decide(ctx.Path(), hasCredential, routes, cfg.LoginPath)
			if decision.Action == ActionPass {
				return cfg.SuccessHandler(ctx)
			}

			if cfg.ReturnToCookie != "" {
				recordReturnTo(ctx, cfg)
			}

			return cfg.RedirectHandler(ctx, decision)
		}
	}
}

func GetDefaultConfig(config ...Config) (cfg Config) {
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.CookieName == "" {
		cfg.CookieName = defaultCookieName
	}

	if cfg.LoginPath == "" {
		cfg.LoginPath = defaultLoginPath
	}

	if len(cfg.PublicRoutes) == 0 {
		cfg.PublicRoutes = DefaultPublicRoutes
	}

	if cfg.Store == nil {
		cfg.Store = func(ctx router.Context) CredentialReader {
			return cookieReader{ctx: ctx}
		}
	}

	if cfg.SuccessHandler == nil {
		cfg.SuccessHandler = func(ctx router.Context) error {
			return ctx.Next()
		}
	}

	if cfg.RedirectHandler == nil {
		cfg.RedirectHandler = func(ctx router.Context, decision Decision) error {
			statusCode := http.StatusSeeOther
			if ctx.Method() == string(router.GET) {
				statusCode = http.StatusFound
			}
			return ctx.Redirect(decision.Target, statusCode)
		}
	}

	return cfg
}

type cookieReader struct {
	ctx router.Context
}

func (r cookieReader) Get(name string) string {
	return r.ctx.Cookies(name)
}

func recordReturnTo(ctx router.Context, cfg Config) {
	ctx.Cookie(&router.Cookie{
		Name:     cfg.ReturnToCookie,
		Value:    ctx.OriginalURL(),
		Expires:  time.Now().Add(time.Minute * 5),
		HTTPOnly: true,
		Secure:   !cfg.InsecureCookies,
		SameSite: "Lax",
	})
}

package authclient

import "time"

const (
	// DefaultAccessCookieName matches the identity service's web client.
	DefaultAccessCookieName = "accessToken"

	// DefaultRefreshCookieName matches the identity service's web client.
	DefaultRefreshCookieName = "refreshToken"

	// DefaultAccessTokenTTL is the access cookie max-age.
	DefaultAccessTokenTTL = time.Hour

	// DefaultRefreshTokenTTL is the refresh cookie max-age.
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour

	// DefaultLoginRoute is where unauthenticated navigations are sent.
	DefaultLoginRoute = "/auth/login"
)

// SimpleConfig is a concrete Config. Zero values fall back to the defaults
// above, so a literal with just BaseURL is a working configuration.
type SimpleConfig struct {
	BaseURL           string
	AccessCookieName  string
	RefreshCookieName string
	AccessTokenTTL    time.Duration
	RefreshTokenTTL   time.Duration
	CookiePath        string
	// InsecureCookies disables the Secure flag. Local development only.
	InsecureCookies bool
	LoginRoute      string
	// ReturnToCookie enables post-login return-to when set: the guard
	// records the rejected path under this cookie name.
	ReturnToCookie string
}

// NewConfig returns a SimpleConfig pointing at the identity service.
func NewConfig(baseURL string) *SimpleConfig {
	return &SimpleConfig{BaseURL: baseURL}
}

func (c *SimpleConfig) GetBaseURL() string { return c.BaseURL }

func (c *SimpleConfig) GetAccessCookieName() string {
	if c.AccessCookieName == "" {
		return DefaultAccessCookieName
	}
	return c.AccessCookieName
}

func (c *SimpleConfig) GetRefreshCookieName() string {
	if c.RefreshCookieName == "" {
		return DefaultRefreshCookieName
	}
	return c.RefreshCookieName
}

func (c *SimpleConfig) GetAccessTokenTTL() time.Duration {
	if c.AccessTokenTTL <= 0 {
		return DefaultAccessTokenTTL
	}
	return c.AccessTokenTTL
}

func (c *SimpleConfig) GetRefreshTokenTTL() time.Duration {
	if c.RefreshTokenTTL <= 0 {
		return DefaultRefreshTokenTTL
	}
	return c.RefreshTokenTTL
}

func (c *SimpleConfig) GetCookiePath() string {
	if c.CookiePath == "" {
		return "/"
	}
	return c.CookiePath
}

func (c *SimpleConfig) GetSecureCookies() bool { return !c.InsecureCookies }

func (c *SimpleConfig) GetLoginRoute() string {
	if c.LoginRoute == "" {
		return DefaultLoginRoute
	}
	return c.LoginRoute
}

func (c *SimpleConfig) GetReturnToCookie() string { return c.ReturnToCookie }

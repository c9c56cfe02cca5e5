package sessionguard

import "strings"

// DefaultPublicRoutes are the paths reachable without a session. The demo
// paths are deliberately public; /demo/api-test renders publicly even though
// the API it calls still requires auth.
var DefaultPublicRoutes = []string{
	"/",
	"/auth/login",
	"/auth/register",
	"/auth/password/reset-password",
	"/auth/password/reset-password-confirmation",
	"/demo",
	"/demo/cookies",
	"/demo/api-test",
}

// PublicRouteSet is an ordered allow-list of path prefixes, fixed at
// construction. Matching is exact or on a `/` boundary: /auth/login matches
// /auth/login and /auth/login/anything, never /auth/loginX.
type PublicRouteSet struct {
	routes []string
}

// NewPublicRouteSet normalizes and stores the given routes. Empty entries
// are dropped, a missing leading slash is added, trailing slashes are
// trimmed (the root route excepted).
func NewPublicRouteSet(routes ...string) *PublicRouteSet {
	s := &PublicRouteSet{}
	for _, route := range routes {
		route = strings.TrimSpace(route)
		if route == "" {
			continue
		}
		if !strings.HasPrefix(route, "/") {
			route = "/" + route
		}
		if route != "/" {
			route = strings.TrimRight(route, "/")
		}
		s.routes = append(s.routes, route)
	}
	return s
}

// Routes returns a copy of the normalized allow-list.
func (s *PublicRouteSet) Routes() []string {
	out := make([]string, len(s.routes))
	copy(out, s.routes)
	return out
}

// Matches reports whether path is public.
func (s *PublicRouteSet) Matches(path string) bool {
	if s == nil {
		return false
	}
	if path == "" {
		path = "/"
	}

	for _, route := range s.routes {
		if route == "/" {
			// the root route is exact, it is a prefix of everything
			if path == "/" {
				return true
			}
			continue
		}
		if path == route || strings.HasPrefix(path, route+"/") {
			return true
		}
	}

	return false
}

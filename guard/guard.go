// Package guard decides whether a navigation is permitted given the current
// session state. It is stateless: every navigation attempt is evaluated
// fresh against the store.
package guard

import "library-client/session"

// Decision is the outcome of a navigation check.
type Decision int

const (
	// Allow lets the navigation through.
	Allow Decision = iota
	// RedirectHome sends an unauthenticated caller to the home page.
	RedirectHome
	// RedirectAccessDenied blocks an authenticated caller whose role does
	// not match the route.
	RedirectAccessDenied
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectHome:
		return "redirect-home"
	case RedirectAccessDenied:
		return "redirect-access-denied"
	}
	return "unknown"
}

// routes maps every navigable path to the role it requires. An empty role
// means the route is public.
var routes = map[string]string{
	"/":                "",
	"/access-denied":   "",
	"/user/login":      "",
	"/user/register":   "",
	"/user/dashboard":  session.RoleUser,
	"/admin/login":     "",
	"/admin/dashboard": session.RoleAdmin,
}

// RequiredRole returns the role a path demands. known is false for paths
// outside the route table (the not-found page).
func RequiredRole(path string) (role string, known bool) {
	role, known = routes[path]
	return role, known
}

// Check evaluates a navigation attempt. A route without a required role is
// always allowed. Otherwise the audience implied by the required role is
// consulted first: a matching token allows the navigation, any other token
// is an access-denied, and no token at all redirects home.
func Check(s session.Store, requiredRole string) (Decision, error) {
	if requiredRole == "" {
		return Allow, nil
	}

	if aud, ok := session.AudienceForRole(requiredRole); ok {
		rec, present, err := s.Get(aud)
		if err != nil {
			return RedirectHome, err
		}
		if present && rec.Token != "" && rec.Role == requiredRole {
			return Allow, nil
		}
	}

	token, err := session.FirstToken(s)
	if err != nil {
		return RedirectHome, err
	}
	if token == "" {
		return RedirectHome, nil
	}
	return RedirectAccessDenied, nil
}

// CheckPath is Check keyed by route path; unknown paths are allowed through
// so the caller can render its not-found page.
func CheckPath(s session.Store, path string) (Decision, error) {
	role, known := RequiredRole(path)
	if !known {
		return Allow, nil
	}
	return Check(s, role)
}

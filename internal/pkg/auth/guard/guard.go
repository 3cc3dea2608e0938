/*
Package guard implements the navigation gate that runs before any page renders.

The gate only looks at whether the session cookie is present, never at its validity.
It keeps anonymous visitors out of the dashboard and signed-in visitors out of the
authentication pages. It is not a security boundary: the backend stays authoritative,
and the session middleware re-checks identity on every page (see package session).
*/
package guard

import (
	"net/http"
	"strings"
)

// Decision is the outcome of evaluating one navigation.
type Decision int

const (
	// Allow lets the request through unchanged.
	Allow Decision = iota

	// RedirectToLogin sends an anonymous visitor to the login page.
	RedirectToLogin

	// RedirectToProtected sends a signed-in visitor to the dashboard.
	RedirectToProtected
)

// Policy holds the two guarded path classes and their redirect targets.
type Policy struct {
	CookieName      string
	ProtectedPrefix string
	AuthPrefix      string
	LoginPath       string
	ProtectedHome   string
}

// DefaultPolicy returns the dashboard/auth policy for the given cookie name.
func DefaultPolicy(cookieName string) Policy {
	return Policy{
		CookieName:      cookieName,
		ProtectedPrefix: "/dashboard",
		AuthPrefix:      "/auth",
		LoginPath:       "/auth/login",
		ProtectedHome:   "/dashboard",
	}
}

// hasPrefix matches prefix on path segment boundaries: "/dashboard" matches
// "/dashboard" and "/dashboard/x" but not "/dashboards".
func hasPrefix(path, prefix string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/'
}

// HasSession reports whether r carries a non-empty session cookie.
func (p Policy) HasSession(r *http.Request) bool {
	c, err := r.Cookie(p.CookieName)
	return err == nil && c.Value != ""
}

// Decide applies the policy table to a path and the cookie's presence.
func (p Policy) Decide(path string, hasSession bool) Decision {
	switch {
	case hasPrefix(path, p.ProtectedPrefix) && !hasSession:
		return RedirectToLogin
	case hasPrefix(path, p.AuthPrefix) && hasSession:
		return RedirectToProtected
	default:
		return Allow
	}
}

// Middleware evaluates the policy before calling next.
func (p Policy) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var target string

		switch p.Decide(r.URL.Path, p.HasSession(r)) {
		case RedirectToLogin:
			target = p.LoginPath
		case RedirectToProtected:
			target = p.ProtectedHome
		default:
			next.ServeHTTP(w, r)
			return
		}

		status := http.StatusFound
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			status = http.StatusTemporaryRedirect
		}

		http.Redirect(w, r, target, status)
	})
}

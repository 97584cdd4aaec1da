// Package gate decides whether a protected action may proceed. The decision
// is a pure function of the current session state and the required role; it
// touches no store and performs no I/O.
package gate

import (
	"github.com/akazarov/authgate/internal/directory"
	"github.com/akazarov/authgate/internal/session"
)

// Decision is the outcome of an authorization check.
type Decision int

const (
	// Pending means the session state has not settled yet (still loading).
	// It is not a verdict: the caller should re-check once the state
	// settles rather than redirect.
	Pending Decision = iota

	// Allow lets the action proceed.
	Allow

	// RedirectToLogin routes an unauthenticated caller to the login area.
	RedirectToLogin

	// RedirectToDefault routes an authenticated caller without the
	// required role to the default landing area. Silently: a logged-in
	// user lacking permission is moved away, not shown an error.
	RedirectToDefault
)

func (d Decision) String() string {
	switch d {
	case Pending:
		return "pending"
	case Allow:
		return "allow"
	case RedirectToLogin:
		return "redirect-to-login"
	case RedirectToDefault:
		return "redirect-to-default"
	default:
		return "unknown"
	}
}

// Authorize evaluates state against requiredRole. An empty requiredRole
// means any authenticated user is allowed.
func Authorize(state session.State, requiredRole directory.Role) Decision {
	switch {
	case state.IsLoading:
		return Pending
	case !state.IsAuthenticated:
		return RedirectToLogin
	case requiredRole != "" && (state.User == nil || state.User.Role != requiredRole):
		return RedirectToDefault
	default:
		return Allow
	}
}

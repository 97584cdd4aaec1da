package cli

import (
	"context"
	"fmt"

	"github.com/akazarov/authgate/internal/directory"
	"github.com/akazarov/authgate/internal/gate"
	"github.com/akazarov/authgate/internal/routes"
)

// WhoAmI prints the current session's user.
func (a *App) WhoAmI(_ context.Context) error {
	state := a.sessions.Current()
	if !state.IsAuthenticated {
		printlnFn("Not logged in.")
		return nil
	}
	u := state.User
	printlnFn(fmt.Sprintf("%s <%s> (%s), member since %s",
		u.Name, u.Email, u.Role, u.CreatedAt.Format("2006-01-02")))
	return nil
}

// Users renders the admin area: the full user directory in insertion order.
// Access goes through the gate; a logged-in non-admin is routed to the
// default area without an error message.
func (a *App) Users(ctx context.Context) error {
	switch gate.Authorize(a.sessions.Current(), directory.RoleAdmin) {
	case gate.Pending:
		printlnFn("Session is still loading, try again.")
		return nil
	case gate.RedirectToLogin:
		printlnFn("Redirecting to", routes.Login)
		return nil
	case gate.RedirectToDefault:
		printlnFn("Redirecting to", routes.Default)
		return nil
	}

	users, err := a.auth.ListUsers(ctx)
	if err != nil {
		printlnFn("Failed to list users:", err.Error())
		return err
	}

	for _, u := range users {
		printlnFn(fmt.Sprintf("%-36s  %-12s  %-24s  %s", u.ID, u.Name, u.Email, u.Role))
	}
	return nil
}

// Open resolves a path against the route table and reports the gate's
// decision, mirroring what navigation would do: allow, redirect, or render
// the not-found fallback.
func (a *App) Open(_ context.Context, path string) error {
	route, ok := routes.Resolve(path)
	if !ok {
		printlnFn("404 — page not found:", path)
		return nil
	}
	if route.Public {
		printlnFn("Opened", route.Path)
		return nil
	}

	switch gate.Authorize(a.sessions.Current(), route.RequiredRole) {
	case gate.Pending:
		printlnFn("Session is still loading, try again.")
	case gate.RedirectToLogin:
		printlnFn("Redirecting to", routes.Login)
	case gate.RedirectToDefault:
		printlnFn("Redirecting to", routes.Default)
	case gate.Allow:
		printlnFn("Opened", route.Path)
	}
	return nil
}

// Health probes the auth service.
func (a *App) Health(ctx context.Context) error {
	h, err := a.auth.HealthCheck(ctx)
	if err != nil {
		printlnFn("Health check failed:", err.Error())
		return err
	}
	printlnFn(h.Message)
	return nil
}

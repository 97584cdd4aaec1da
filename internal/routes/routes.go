// Package routes defines the application's route-level surface: the public
// login/register area, the authenticated area, the nested admin-only area,
// and the not-found fallback.
package routes

import "github.com/akazarov/authgate/internal/directory"

// Well-known paths.
const (
	Login      = "/login"
	Register   = "/register"
	Dashboard  = "/dashboard"
	AdminUsers = "/admin/users"

	// Default is the authenticated landing area; redirect target for
	// authenticated-but-unauthorized access.
	Default = Dashboard
)

// Route describes the access requirements of a path. A public route needs no
// session; a non-public route with an empty RequiredRole needs any
// authenticated session.
type Route struct {
	Path         string
	Public       bool
	RequiredRole directory.Role
}

var table = map[string]Route{
	Login:      {Path: Login, Public: true},
	Register:   {Path: Register, Public: true},
	Dashboard:  {Path: Dashboard},
	AdminUsers: {Path: AdminUsers, RequiredRole: directory.RoleAdmin},
}

// Resolve maps a path to its route. "/" is an alias for the default landing
// area. Unmatched paths report ok=false; rendering the not-found fallback is
// up to the caller and has no side effects here.
func Resolve(path string) (Route, bool) {
	if path == "/" {
		path = Default
	}
	r, ok := table[path]
	return r, ok
}

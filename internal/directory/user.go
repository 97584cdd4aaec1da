// Package directory holds the durable collection of user records: identity,
// role, and creation time, keyed by id and by unique email.
package directory

import "time"

// Role is the coarse access level attached to every user.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User is a registered account. Records are created at registration and
// never deleted; there is no mutation path for Role.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

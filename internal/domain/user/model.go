package user

import "slices"

// Roles recognised by the authorization policy.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleMember  = "member"
)

// User is a fixture account. PasswordHash is a bcrypt hash and never leaves
// the server.
type User struct {
	ID           string `json:"id" yaml:"id"`
	Username     string `json:"username" yaml:"username"`
	Name         string `json:"name" yaml:"name"`
	Rank         int    `json:"rank" yaml:"rank"`
	Role         string `json:"role" yaml:"role"`
	Department   string `json:"department,omitempty" yaml:"department"`
	PasswordHash string `json:"-" yaml:"password_hash"`
}

// Actor is the authenticated caller as seen by the lifecycle core.
type Actor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Rank int    `json:"rank"`
	Role string `json:"role"`
}

// System is the actor used for scheduler-driven changes.
var System = Actor{ID: "system", Name: "system", Rank: 0, Role: RoleAdmin}

func (u User) Actor() Actor {
	return Actor{ID: u.ID, Name: u.Name, Rank: u.Rank, Role: u.Role}
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// HasRole reports whether the actor holds any of roles.
func (a Actor) HasRole(roles ...string) bool {
	return slices.Contains(roles, a.Role)
}

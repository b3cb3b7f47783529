package session

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/hudhura/core"
)

// Role is the closed set of user roles known to this client. The server is
// the authority; the role only drives which screens are composed.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

var Roles = []Role{RoleStudent, RoleTeacher, RoleAdmin}

func (r Role) IsStudent() bool { return r == RoleStudent }
func (r Role) IsTeacher() bool { return r == RoleTeacher }
func (r Role) IsAdmin() bool   { return r == RoleAdmin }

// Session holds the two opaque secrets issued at login. The refresh token is
// persisted but never used to renew the access token; when the access token
// expires the next API call fails and the session is torn down.
type Session struct {
	Access  string
	Refresh string
}

// Profile is the caller's own profile as served by `me/`. It is fetched fresh
// on every session check and never persisted.
type Profile struct {
	ID             int      `json:"id"`
	Username       string   `json:"username"`
	FirstName      string   `json:"first_name"`
	LastName       string   `json:"last_name"`
	Role           Role     `json:"role"`
	AcademicGroups []string `json:"academic_groups"`
}

func (p Profile) FullName() string {
	return core.CleanString(p.FirstName + " " + p.LastName)
}

func (p Profile) GroupNames() string {
	return strings.Join(p.AcademicGroups, ", ")
}

// Credentials is the login form.
type Credentials struct {
	Username string `json:"username" validate:"required,alphanum_"`
	Password string `json:"password" validate:"required"`
}

func (c *Credentials) Validate(validate *validator.Validate) error {
	c.Username = core.CleanString(c.Username)
	return validate.Struct(c)
}

// State is the auth controller's navigation state.
type State int

const (
	StateLoading State = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	}
	return "unknown"
}

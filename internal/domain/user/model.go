package user

import "strings"

const (
	RoleAdmin  = "admin"
	RolePlayer = "player"
)

// User is a registered participant, created lazily on first successful
// access-code sign-in.
type User struct {
	ID    string
	Email string
	Name  string
	Role  string
}

// Principal is the authenticated identity attached to a request context.
type Principal struct {
	UserID string
	Email  string
	Role   string
}

func (p Principal) IsAdmin() bool {
	return NormalizeRole(p.Role) == RoleAdmin
}

func NormalizeRole(value string) string {
	role := strings.ToLower(strings.TrimSpace(value))
	if role == RoleAdmin {
		return RoleAdmin
	}
	return RolePlayer
}

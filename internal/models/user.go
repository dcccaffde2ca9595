package models

// User roles
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// ValidRole reports whether role is one of the allowed role values.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleMember
}

// User is an identity that owns exactly one wallet. The balance itself lives
// in the wallet store and is never written through this record.
type User struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"-"` // bcrypt hash
	Role     string `json:"role"`
}

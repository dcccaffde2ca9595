package models

import "github.com/golang-jwt/jwt/v5"

// UserClaims are the JWT claims issued at login and attached to every
// authenticated request.
type UserClaims struct {
	jwt.RegisteredClaims
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// IsAdmin reports whether the claims carry the admin role.
func (c *UserClaims) IsAdmin() bool {
	return c.Role == RoleAdmin
}

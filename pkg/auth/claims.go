package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/KennethTannn98/stockflow-console/pkg/enums"
)

// AccessTokenClaims is the typed JWT payload issued at login.
type AccessTokenClaims struct {
	Username string       `json:"username"`
	Roles    []enums.Role `json:"roles"`
	jwt.RegisteredClaims
}

// Credential is what the console can learn from an opaque bearer token
// without verifying it: who the token claims to be and which roles it
// carries. Authorization decisions stay server-side; this only drives
// which screens the console offers.
type Credential struct {
	Subject  string
	Username string
	Roles    []enums.Role
}

// HasRole reports whether the credential carries the given role.
func (c Credential) HasRole(role enums.Role) bool {
	for _, candidate := range c.Roles {
		if candidate == role {
			return true
		}
	}
	return false
}

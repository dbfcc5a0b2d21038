package auth

import "github.com/golang-jwt/jwt/v5"

// AdminRole is the only actor role the storefront knows besides anonymous shoppers.
const AdminRole = "admin"

// AdminTokenClaims represents the typed JWT issued to the admin panel.
type AdminTokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

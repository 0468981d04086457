package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenPayload captures the data available when minting a staff JWT.
type AccessTokenPayload struct {
	StaffName string
	JTI       string
}

// AccessTokenClaims represents the typed JWT issued to staff sessions.
// There is no per-user account model; the shared-secret gate only records
// the display name the operator logged in with.
type AccessTokenClaims struct {
	StaffName string `json:"staff_name"`
	jwt.RegisteredClaims
}

package model

import (
	"github.com/golang-jwt/jwt/v5"
)

// UserClaims is the JWT payload issued by the identity provider.
// "sub" holds the user UUID.
type UserClaims struct {
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

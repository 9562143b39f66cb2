package service

import (
	"errors"
	"time"

	"go_vocab_sets/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// IssueToken signs an HS256 session token for userID. The app itself does not
// authenticate users; this is used by the "token" command for local development.
func IssueToken(secret string, userID uuid.UUID, name string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret is empty")
	}
	if userID == uuid.Nil {
		return "", model.ErrInvalidInput
	}
	now := time.Now()
	claims := &model.UserClaims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

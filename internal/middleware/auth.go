package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go_vocab_sets/internal/config"
	"go_vocab_sets/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTAuthMiddleware は Authorization ヘッダー、またはセッション Cookie のトークンを検証し、
// Requester をコンテキストに格納します。トークンがない・無効な場合は匿名として続行します。
func JWTAuthMiddleware(cfg config.AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			tokenString, fromCookie := extractToken(r, cfg.CookieName)
			if tokenString == "" {
				next.ServeHTTP(w, r)
				return
			}

			requester, err := ParseToken(cfg.JWTSecret, tokenString)
			if err != nil {
				logger.Warn("JWT auth failed: invalid token", "error", err, "from_cookie", fromCookie)
				if fromCookie {
					ClearSessionCookie(w, cfg.CookieName)
				}
				next.ServeHTTP(w, r)
				return
			}

			logger = logger.With("user_id", requester.UserID.String())
			ctx := context.WithValue(r.Context(), model.RequesterKey, requester)
			ctx = WithLogger(ctx, logger)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ParseToken verifies an HS256 token and returns the requester it names.
func ParseToken(secret, tokenString string) (model.Requester, error) {
	claims := &model.UserClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return model.Requester{}, err
	}
	if !token.Valid {
		return model.Requester{}, errors.New("invalid token")
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return model.Requester{}, errors.New("subject (sub) claim missing")
	}
	userID, err := uuid.Parse(subject)
	if err != nil {
		return model.Requester{}, errors.New("subject (sub) is not a UUID")
	}
	return model.Requester{UserID: userID, Name: claims.Name}, nil
}

func extractToken(r *http.Request, cookieName string) (string, bool) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		headerParts := strings.SplitN(authHeader, " ", 2)
		if len(headerParts) == 2 && strings.EqualFold(headerParts[0], "bearer") {
			return strings.TrimSpace(headerParts[1]), false
		}
		return "", false
	}
	if cookieName == "" {
		return "", false
	}
	if c, err := r.Cookie(cookieName); err == nil {
		return c.Value, true
	}
	return "", false
}

// SetSessionCookie stores a verified token for browser sessions.
func SetSessionCookie(w http.ResponseWriter, name, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearSessionCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// GetRequester returns the requester stored by the auth middleware,
// or an anonymous requester.
func GetRequester(ctx context.Context) model.Requester {
	if requester, ok := ctx.Value(model.RequesterKey).(model.Requester); ok {
		return requester
	}
	return model.Requester{}
}

// internal/middleware/dev_auth.go
package middleware

import (
	"context"
	"net/http"

	"go_vocab_sets/internal/model"

	"github.com/google/uuid"
)

// DevUserContextMiddleware は開発時用ミドルウェアです。
// X-User-ID / X-User-Name ヘッダーから Requester を作り、コンテキストに設定します。
// ヘッダーがない場合は匿名のまま続行します。
func DevUserContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := GetLogger(r.Context())

		userIDStr := r.Header.Get("X-User-ID")
		if userIDStr == "" {
			next.ServeHTTP(w, r)
			return
		}

		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			logger.Warn("[DEV AUTH] Invalid X-User-ID format", "x_user_id", userIDStr)
			next.ServeHTTP(w, r)
			return
		}

		requester := model.Requester{UserID: userID, Name: r.Header.Get("X-User-Name")}
		if requester.Name == "" {
			requester.Name = "dev"
		}
		ctx := context.WithValue(r.Context(), model.RequesterKey, requester)
		ctx = WithLogger(ctx, logger.With("user_id", userID.String()))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

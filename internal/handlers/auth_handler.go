package handlers

import (
	"net/http"

	"go_vocab_sets/internal/config"
	"go_vocab_sets/internal/middleware"
	"go_vocab_sets/internal/model"
	"go_vocab_sets/internal/view"
	"go_vocab_sets/internal/webutil"
)

// AuthHandler は外部の認証基盤が発行したトークンをセッション Cookie に保存します。
// ユーザー登録やパスワードはこのアプリでは扱いません。
type AuthHandler struct {
	pages
	cfg config.AuthConfig
}

func NewAuthHandler(cfg config.AuthConfig, views *view.Renderer) *AuthHandler {
	return &AuthHandler{pages: pages{views: views}, cfg: cfg}
}

// Callback は ?token= を検証し、Cookie に保存して一覧へリダイレクトします
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	token := r.URL.Query().Get("token")
	if token == "" {
		h.fail(w, r, model.NewAppError("INVALID_REQUEST", "A sign-in token is required.", "token", model.ErrInvalidInput))
		return
	}
	logger = logger.With("token_prefix", token[:min(8, len(token))])

	requester, err := middleware.ParseToken(h.cfg.JWTSecret, token)
	if err != nil {
		logger.Warn("Sign-in token rejected", "error", err)
		h.fail(w, r, model.NewAppError("INVALID_TOKEN", "The sign-in link is invalid or has expired.", "token", model.ErrUnauthorized))
		return
	}

	middleware.SetSessionCookie(w, h.cfg.CookieName, token)
	logger.Info("User signed in", "user_id", requester.UserID.String())
	webutil.SetFlash(w, "info", "Signed in as "+requester.Name+".")
	redirect(w, r, "/")
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearSessionCookie(w, h.cfg.CookieName)
	redirect(w, r, "/")
}

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"go_vocab_sets/internal/config"
	"go_vocab_sets/internal/middleware"
	"go_vocab_sets/internal/model"
	"go_vocab_sets/internal/service"
	"go_vocab_sets/internal/view"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"gorm.io/gorm"
)

const defaultRequestTimeout = 60 * time.Second

// RouterDeps は NewRouter に必要な依存関係です
type RouterDeps struct {
	Logger         *slog.Logger
	DB             *gorm.DB
	Sets           service.SetService
	Entries        service.EntryService
	Views          *view.Renderer
	Auth           config.AuthConfig
	CORS           config.CORSConfig
	RequestTimeout time.Duration
}

func NewRouter(d RouterDeps) http.Handler {
	if d.RequestTimeout <= 0 {
		d.RequestTimeout = defaultRequestTimeout
	}

	homeHandler := NewHomeHandler(d.Sets, d.Views)
	setHandler := NewSetHandler(d.Sets, d.Entries, d.Views)
	entryHandler := NewEntryHandler(d.Entries, d.Views)
	authHandler := NewAuthHandler(d.Auth, d.Views)
	healthHandler := NewHealthHandler(d.DB)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(d.Logger))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   d.CORS.AllowedOrigins,
		AllowedMethods:   d.CORS.AllowedMethods,
		AllowedHeaders:   d.CORS.AllowedHeaders,
		ExposedHeaders:   d.CORS.ExposedHeaders,
		AllowCredentials: d.CORS.AllowCredentials,
		MaxAge:           d.CORS.MaxAge,
		Debug:            false,
	})
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(d.RequestTimeout))

	if d.Auth.Enabled {
		r.Use(middleware.JWTAuthMiddleware(d.Auth))
	} else {
		d.Logger.Warn("Authentication disabled: using X-User-ID header (development only)")
		r.Use(middleware.DevUserContextMiddleware)
	}

	r.Get("/health", healthHandler.Health)
	r.Get("/about", homeHandler.About)
	r.Get("/auth/callback", authHandler.Callback)
	r.Get("/logout", authHandler.Logout)
	r.Post("/logout", authHandler.Logout)

	r.Get("/", homeHandler.Home)
	r.Post("/", homeHandler.CreateSet)

	r.Route("/{slug}", func(r chi.Router) {
		r.Get("/", setHandler.ShowSet)
		r.Post("/", setHandler.AddEntry)
		r.Get("/delete", setHandler.DeleteSet)
		r.Post("/delete", setHandler.DeleteSet)
		r.Get("/pdf", setHandler.ExportPDF)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/star", entryHandler.Star)
			r.Post("/star", entryHandler.Star)
			r.Get("/unstar", entryHandler.Unstar)
			r.Post("/unstar", entryHandler.Unstar)
			r.Get("/edit", entryHandler.EditForm)
			r.Post("/edit", entryHandler.Edit)
			r.Get("/delete", entryHandler.Delete)
			r.Post("/delete", entryHandler.Delete)
			r.Post("/translate", entryHandler.RetryTranslation)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		pages{views: d.Views}.fail(w, r, model.ErrNotFound)
	})

	return r
}

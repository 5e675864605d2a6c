package api

import (
	"net/http"
	"strings"

	"github.com/dom/notes-api/internal/api/handlers"
	"github.com/dom/notes-api/internal/api/middleware"
	"github.com/dom/notes-api/internal/config"
	"github.com/dom/notes-api/internal/service"
	"github.com/dom/notes-api/internal/websocket"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

func NewRouter(services *service.Services, tokens middleware.TokenVerifier, hub *websocket.Hub, logger zerolog.Logger, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.Logging(logger)...)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	r.Get("/", handlers.Index)
	r.Get("/health", handlers.Health)

	// Initialize handlers
	accountHandler := handlers.NewAccountHandler(services.Account)
	profileHandler := handlers.NewProfileHandler(services.Profile)
	noteHandler := handlers.NewNoteHandler(services.Note)
	wsHandler := handlers.NewWebSocketHandler(hub, tokens, originAllowed(cfg.CORSAllowedOrigins))

	// Public account routes
	r.Post("/create-account", accountHandler.Register)
	r.Post("/login", accountHandler.Login)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(tokens))

		r.Get("/get-user", profileHandler.GetUser)

		r.Post("/add-note", noteHandler.Create)
		r.Get("/get-all-notes", noteHandler.List)
		r.Put("/edit-note/{noteId}", noteHandler.Update)
		r.Put("/update-note-pinned/{noteId}", noteHandler.SetPinned)
		r.Delete("/delete-note/{noteId}", noteHandler.Delete)
	})

	// WebSocket endpoint, authenticated by query token
	r.Get("/ws", wsHandler.Handle)

	return r
}

func originAllowed(allowed []string) func(string) bool {
	return func(origin string) bool {
		for _, a := range allowed {
			if a == "*" || strings.EqualFold(a, origin) {
				return true
			}
		}
		return false
	}
}

package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"mural/internal/handler"
	"mural/internal/httputil"
	"mural/internal/redis"
	"mural/internal/service"
	authmw "mural/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	AuthHandler     *handler.AuthHandler
	UserHandler     *handler.UserHandler
	PostHandler     *handler.PostHandler
	CommentHandler  *handler.CommentHandler
	ReactionHandler *handler.ReactionHandler
	MediaHandler    *handler.MediaHandler

	Sessions           *service.SessionService
	Redis              *redis.Client
	RateLimitPerMinute int
	AllowedOrigins     []string
}

// NewRouter creates and configures a new Chi router with all route groups
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Options{
			AllowedOrigins:   cfg.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
		}).Handler)
	}

	optional := authmw.OptionalAuth(cfg.Sessions)
	required := authmw.RequireAuth(cfg.Sessions)
	loginLimiter := authmw.RateLimit(cfg.Redis, "auth", cfg.RateLimitPerMinute, time.Minute)

	// Health check endpoint (useful for deployment/monitoring)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, 200, map[string]string{"status": "ok"})
	})

	// Public routes - no authentication required
	r.With(loginLimiter).Post("/register", cfg.AuthHandler.Register)
	r.With(loginLimiter).Post("/login", cfg.AuthHandler.Login)

	// Public reads with optional authentication (viewer state)
	r.Group(func(r chi.Router) {
		r.Use(optional)

		r.Get("/post", cfg.PostHandler.Feed)
		r.Get("/comment", cfg.CommentHandler.List)
		r.Get("/post/comment", cfg.CommentHandler.List)
		r.Get("/user/{email}/posts", cfg.UserHandler.PostsByEmail)
		r.Get("/user/{email}/stats", cfg.UserHandler.Stats)
		r.Get("/media", cfg.MediaHandler.Get)
		r.Get("/media/galery", cfg.MediaHandler.Gallery)
	})

	// Protected routes - require authentication
	r.Group(func(r chi.Router) {
		r.Use(required)

		r.Post("/logout", cfg.AuthHandler.Logout)

		r.Post("/post", cfg.PostHandler.Create)
		r.Put("/post", cfg.PostHandler.Update)
		r.Delete("/post", cfg.PostHandler.Delete)

		r.Post("/comment", cfg.CommentHandler.Create)
		r.Put("/comment", cfg.CommentHandler.Update)
		r.Delete("/comment", cfg.CommentHandler.Delete)

		r.Post("/react", cfg.ReactionHandler.React)
		r.Delete("/react", cfg.ReactionHandler.Unreact)
		// Kept for clients that still reach comments and reactions under
		// the post path.
		r.Post("/post/comment", cfg.CommentHandler.Create)
		r.Post("/post/react", cfg.ReactionHandler.React)

		r.Get("/user", cfg.UserHandler.Profile)
		r.Put("/user", cfg.UserHandler.UpdateProfilePicture)
		r.Post("/user/follow", cfg.UserHandler.Follow)
		r.Post("/user/unfollow", cfg.UserHandler.Unfollow)
	})

	return r
}

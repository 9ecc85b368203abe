package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/upadhyay-sonu/Task-Manager/internal/config"
	"github.com/upadhyay-sonu/Task-Manager/internal/handler"
	"github.com/upadhyay-sonu/Task-Manager/internal/middleware"
)

type Handlers struct {
	Auth   *handler.AuthHandler
	Task   *handler.TaskHandler
	Health *handler.HealthHandler
	SPA    *handler.SPAHandler
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, h Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimit := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.FrontendOrigin))
	r.Use(rateLimit.Handler)

	r.Get("/", handler.Root)
	r.Get("/health", h.Health.Check)
	r.NotFound(handler.NotFoundRoute)

	r.Route("/auth", func(auth chi.Router) {
		auth.Use(middleware.Timeout(cfg.RequestTimeout))

		auth.Post("/register", h.Auth.Register)
		auth.Post("/login", h.Auth.Login)
		auth.Post("/refresh", h.Auth.Refresh)
		auth.Post("/logout", h.Auth.Logout)
	})

	r.Route("/tasks", func(tasks chi.Router) {
		tasks.Use(middleware.Timeout(cfg.RequestTimeout))
		tasks.Use(authMiddleware.RequireAuth)

		tasks.Post("/", h.Task.Create)
		tasks.Get("/", h.Task.List)
		tasks.Get("/{id}", h.Task.Get)
		tasks.Patch("/{id}", h.Task.Update)
		tasks.Patch("/{id}/toggle", h.Task.Toggle)
		tasks.Delete("/{id}", h.Task.Delete)
	})

	if h.SPA != nil {
		r.Get("/app", h.SPA.Redirect)
		r.Handle("/app/*", http.HandlerFunc(h.SPA.Serve))
	}

	return r
}

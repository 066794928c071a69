package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"

	"github.com/vlat-exam/api/internal/api/handlers"
	mw "github.com/vlat-exam/api/internal/api/middleware"
)

type Dependencies struct {
	// Verbose adds error details to 500 responses.
	Verbose        bool
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
	// ExposeDiagnostics mounts /api/db-info and /api/users. Both are
	// unauthenticated and leak configuration and user data.
	ExposeDiagnostics bool

	Verifier      mw.TokenVerifier
	HealthHandler *handlers.HealthHandler
	AuthHandler   *handlers.AuthHandler
	UsersHandler  *handlers.UsersHandler
}

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.Logging)
	r.Use(mw.Recovery(dep.Verbose))
	r.Use(mw.CORS(dep.AllowedOrigins, dep.Verbose))
	r.Use(mw.RateLimit(dep.RateLimitRPS, dep.RateLimitBurst))
	r.Use(chimid.Compress(5))

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.NotFound)

	r.Get("/", dep.HealthHandler.Root)
	r.Get("/api/health", dep.HealthHandler.Health)

	r.Post("/api/register", dep.AuthHandler.Register)
	r.Post("/api/login", dep.AuthHandler.Login)

	r.With(mw.Auth(dep.Verifier)).Get("/api/me", dep.UsersHandler.Me)

	if dep.ExposeDiagnostics {
		r.Get("/api/db-info", dep.HealthHandler.DBInfo)
		r.Get("/api/users", dep.UsersHandler.List)
	}

	return r
}

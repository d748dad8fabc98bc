package http

import (
	"net/http"
	"time"

	"github.com/mkozlov/userd/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
)

// NewRouter constructs and returns an HTTP handler that serves the API.
//
// Routes:
//
//	POST   /auth/register → authHandler.Register
//	POST   /auth/login    → authHandler.Login
//	GET    /auth/logout   → authHandler.Logout   (token gated)
//	GET    /user          → userHandler.List     (token gated)
//	GET    /user/my       → userHandler.GetSelf  (token gated)
//	PATCH  /user/my       → userHandler.UpdateSelf (token gated)
//	DELETE /user/my       → userHandler.DeleteSelf (token gated)
//
// Middleware chain (applied in order):
//  1. AllowContentType("application/json") — rejects non-JSON bodies
//  2. httprate.LimitByIP                   — per-IP rate limiting
//  3. WithRequestLogging(logger)           — logs incoming requests
//  4. TokenAuth (protected group only)     — signature + live-session gate
func NewRouter(
	authHandler *AuthHandler,
	userHandler *UserHandler,
	verifier middleware.TokenVerifier,
	sessions middleware.SessionChecker,
	rateLimit int,
	rateWindow time.Duration,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Throttle clients by IP
	r.Use(httprate.LimitByIP(rateLimit, rateWindow))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/auth", func(r chi.Router) {
		// Public endpoints
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)

		// Logout needs a live session to revoke
		r.Group(func(r chi.Router) {
			r.Use(middleware.TokenAuth(verifier, sessions))
			r.Get("/logout", authHandler.Logout)
		})
	})

	// Protected group: requires a valid access token and a live session
	r.Route("/user", func(r chi.Router) {
		r.Use(middleware.TokenAuth(verifier, sessions))
		r.Get("/", userHandler.List)
		r.Get("/my", userHandler.GetSelf)
		r.Patch("/my", userHandler.UpdateSelf)
		r.Delete("/my", userHandler.DeleteSelf)
	})

	return r
}

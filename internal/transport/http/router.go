package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/wordly-app/backend/internal/application/auth"
	"github.com/wordly-app/backend/internal/application/category"
	"github.com/wordly-app/backend/internal/application/user"
	"github.com/wordly-app/backend/internal/config"
	jwtinfra "github.com/wordly-app/backend/internal/infrastructure/jwt"
	"github.com/wordly-app/backend/internal/infrastructure/smtp"
	"github.com/wordly-app/backend/internal/transport/http/handler"
	appmiddleware "github.com/wordly-app/backend/internal/transport/http/middleware"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo     UserRepository
	CategoryRepo CategoryRepository
	PendingRepo  PendingRegistrationStore
	Mailer       smtp.Mailer
	JWTProvider  *jwtinfra.Provider
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		// Credentialed: the browser client authenticates with cookies.
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authMw := appmiddleware.Auth(deps.JWTProvider, deps.UserRepo)

	// 5 requests/second, burst of 10 — applied to the endpoints that send
	// email. Login and verify-otp stay unlimited.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	authSvc := auth.NewService(auth.ServiceDeps{
		PendingRepo: deps.PendingRepo,
		UserRepo:    deps.UserRepo,
		Mailer:      deps.Mailer,
		Tokens:      deps.JWTProvider,
	})
	userSvc := user.NewService(deps.UserRepo)
	categorySvc := category.NewService(deps.CategoryRepo)

	authH := handler.NewAuthHandler(authSvc, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	userH := handler.NewUserHandler(userSvc)
	categoryH := handler.NewCategoryHandler(categorySvc)

	r.Route("/api", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check", handler.HealthCheck)

		r.Route("/auth", func(r chi.Router) {
			r.With(sensitiveRL.Limit).Post("/register", authH.Register)
			r.Post("/verify-otp", authH.VerifyOTP)
			r.With(sensitiveRL.Limit).Post("/resend-otp", authH.ResendOTP)
			r.Post("/login", authH.Login)
			r.Post("/refresh-token", authH.Refresh)
			r.Post("/logout", authH.Logout)
		})

		r.Get("/categories", categoryH.List)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/users/me", userH.Me)
			r.Put("/users/profile", userH.UpdateProfile)
			r.Put("/users/password", userH.UpdatePassword)
			r.Put("/users/preferences", userH.UpdatePreferences)

			r.Post("/categories", categoryH.Create)
		})
	})

	return r
}

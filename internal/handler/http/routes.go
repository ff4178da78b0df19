package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Paths the route guard reasons about.
const (
	landingPath     = "/dashboard"
	protectedPrefix = "/dashboard"
	signInPath      = "/auth/signin"
	signUpPath      = "/auth/signup"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	// without a trusted proxy the peer address is the only client IP
	if h.trustProxyHeaders {
		router.Use(middleware.RealIP)
	}
	router.Use(
		middleware.Recoverer,
		h.withTraceID,
		h.withLogging,
		middleware.Compress(5, "application/json", "text/html"),
		h.guard,
	)

	router.Get("/healthz", h.healthz)
	router.Get("/api/version", h.getServerVersion)

	// auth-only pages, redirected to the dashboard for signed-in users
	router.Group(func(r chi.Router) {
		r.Get(signInPath, h.signInPage)
		r.Get(signUpPath, h.signUpPage)
	})

	router.Group(func(r chi.Router) {
		r.Post("/auth/login", h.login)
		r.Post("/auth/logout", h.logout)
		r.Get("/auth/session", h.session)
		r.Post("/auth/register", h.register)
		r.Post("/auth/verify-email", h.verifyEmail)
		r.Post("/auth/resend-verification", h.resendVerification)
		r.Post("/auth/forgot-password", h.forgotPassword)
		r.Post("/auth/reset-password", h.resetPassword)
	})

	// protected area; the guard redirects anonymous requests
	router.Group(func(r chi.Router) {
		r.Get(landingPath, h.dashboard)
		r.Get("/dashboard/account", h.getAccount)
		r.Patch("/dashboard/account", h.updateAccount)
		r.Get("/dashboard/widgets/weather", h.weather)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

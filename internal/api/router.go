package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hackmap/engine/internal/api/handlers"
	mw "github.com/hackmap/engine/internal/api/middleware"
)

type Dependencies struct {
	Tokens         mw.TokenParser
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
	HealthChecks   map[string]handlers.Checker

	AuthHandler          *handlers.AuthHandler
	UsersHandler         *handlers.UsersHandler
	HackathonsHandler    *handlers.HackathonsHandler
	RegistrationsHandler *handlers.RegistrationsHandler
	TeamsHandler         *handlers.TeamsHandler
	IdeasHandler         *handlers.IdeasHandler
	NotificationsHandler *handlers.NotificationsHandler
}

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()

	// Built-in middleware
	r.Use(mw.RequestID)
	r.Use(mw.Recovery)
	r.Use(mw.Logging)
	r.Use(mw.CORS(dep.AllowedOrigins))
	if dep.RateLimitRPS > 0 {
		r.Use(mw.RateLimit(dep.RateLimitRPS, dep.RateLimitBurst))
	}
	r.Use(chimid.Compress(5))

	// Health and metrics
	hh := handlers.NewHealthHandler(dep.HealthChecks)
	r.Get("/healthz", hh.Liveness)
	r.Get("/readyz", hh.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	requireAuth := mw.Auth(dep.Tokens)

	r.Route("/api/v1", func(api chi.Router) {
		api.Route("/auth", func(ar chi.Router) {
			ar.Post("/register", dep.AuthHandler.Register)
			ar.Post("/login", dep.AuthHandler.Login)
			ar.With(requireAuth).Get("/me", dep.AuthHandler.Me)
			ar.With(requireAuth).Post("/change-password", dep.AuthHandler.ChangePassword)
		})

		api.With(requireAuth).Patch("/users/{id}", dep.UsersHandler.UpdateProfile)

		api.Route("/hackathons", func(hr chi.Router) {
			hr.Get("/", dep.HackathonsHandler.List)
			hr.Get("/{id}", dep.HackathonsHandler.Get)
			hr.With(requireAuth).Post("/", dep.HackathonsHandler.Create)
		})

		api.Route("/registrations", func(rr chi.Router) {
			rr.Use(requireAuth)
			rr.Post("/", dep.RegistrationsHandler.Create)
			rr.Get("/status", dep.RegistrationsHandler.Status)
			rr.Get("/mine", dep.RegistrationsHandler.Mine)
		})

		api.Route("/teams", func(tr chi.Router) {
			tr.Get("/", dep.TeamsHandler.List)
			tr.Group(func(pr chi.Router) {
				pr.Use(requireAuth)
				pr.Post("/", dep.TeamsHandler.Create)
				pr.Post("/join", dep.TeamsHandler.Join)
				pr.Get("/mine", dep.TeamsHandler.Mine)
				pr.Get("/recommended", dep.TeamsHandler.Recommended)
				pr.Get("/user-team", dep.TeamsHandler.UserTeam)
			})
			tr.Get("/{id}", dep.TeamsHandler.Get)
			tr.Get("/{id}/members", dep.TeamsHandler.Members)
		})

		api.Route("/ideas", func(ir chi.Router) {
			ir.With(mw.OptionalAuth(dep.Tokens)).Get("/", dep.IdeasHandler.List)
			ir.With(mw.OptionalAuth(dep.Tokens)).Get("/{id}", dep.IdeasHandler.Get)
			ir.Get("/{id}/comments", dep.IdeasHandler.Comments)
			ir.Group(func(pr chi.Router) {
				pr.Use(requireAuth)
				pr.Post("/", dep.IdeasHandler.Create)
				pr.Post("/{id}/comments", dep.IdeasHandler.AddComment)
				pr.Post("/{id}/endorsements", dep.IdeasHandler.Endorse)
				pr.Delete("/{id}/endorsements", dep.IdeasHandler.Unendorse)
			})
		})

		api.Route("/notifications", func(nr chi.Router) {
			nr.Use(requireAuth)
			nr.Get("/", dep.NotificationsHandler.List)
			nr.Get("/unread-count", dep.NotificationsHandler.UnreadCount)
			nr.Patch("/{id}/read", dep.NotificationsHandler.MarkRead)
		})
	})

	return r
}

package rest

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/vyrtus/helpdesk/internal"
	"github.com/vyrtus/helpdesk/internal/asset"
	"github.com/vyrtus/helpdesk/internal/auth"
	"github.com/vyrtus/helpdesk/internal/client"
	"github.com/vyrtus/helpdesk/internal/ticket"
	"github.com/vyrtus/helpdesk/internal/transport/middleware"
	"github.com/vyrtus/helpdesk/internal/transport/swagger"
	"github.com/vyrtus/helpdesk/internal/user"
)

type Handlers struct {
	Auth   *auth.Handler
	User   *user.Handler
	Ticket *ticket.Handler
	Asset  *asset.Handler
	Client *client.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, cfg *internal.Config, h Handlers, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   strings.Split(cfg.Server.AllowedOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Trace-ID"},
		AllowCredentials: true,
	}))
	router.Use(middleware.RequestID)
	router.Use(httprate.LimitByIP(cfg.Server.RateLimitPerMin, time.Minute))
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// OpenAPI spec at root, swagger UI next to it
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, cfg.Server.OpenAPIPath)
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)
			sr.Post("/logout", h.Auth.Logout)
		})

		// Protected routes
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Get("/users/me", h.User.GetCurrentUser)

			pr.Group(func(ar chi.Router) {
				ar.Use(middleware.RequireManageUsers())
				ar.Get("/users", h.User.ListUsers)
				ar.Patch("/users/{id}/permissions", h.User.UpdatePermissions)
			})

			pr.Route("/tickets", func(tr chi.Router) {
				tr.Use(middleware.RequireViewTickets())
				tr.Get("/", h.Ticket.ListTickets)
				tr.Get("/stats", h.Ticket.GetStats)
				tr.Post("/", h.Ticket.CreateTicket)
				tr.Route("/{id}", func(ir chi.Router) {
					ir.Get("/", h.Ticket.GetTicket)
					ir.Patch("/", h.Ticket.UpdateTicket)
					ir.Get("/activities", h.Ticket.ListActivities)
					ir.Post("/activities", h.Ticket.AddComment)
					ir.Post("/attachments", h.Ticket.AddAttachment)
				})
			})

			pr.With(middleware.RequireViewAssets()).Get("/assets", h.Asset.ListAssets)
			pr.Get("/clients", h.Client.ListClients)
		})
	})
}

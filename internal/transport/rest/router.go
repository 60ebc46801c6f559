package rest

import (
	"database/sql"
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/zeitwerk/zeitwerk/internal/auth"
	"github.com/zeitwerk/zeitwerk/internal/balance"
	"github.com/zeitwerk/zeitwerk/internal/group"
	"github.com/zeitwerk/zeitwerk/internal/holiday"
	"github.com/zeitwerk/zeitwerk/internal/observability/metrics"
	"github.com/zeitwerk/zeitwerk/internal/project"
	"github.com/zeitwerk/zeitwerk/internal/report"
	"github.com/zeitwerk/zeitwerk/internal/timeentry"
	"github.com/zeitwerk/zeitwerk/internal/transport/middleware"
	"github.com/zeitwerk/zeitwerk/internal/user"
)

// Handlers bundles every feature handler the router mounts.
type Handlers struct {
	Auth      *auth.Handler
	User      *user.Handler
	TimeEntry *timeentry.Handler
	Balance   *balance.Handler
	Report    *report.Handler
	Project   *project.Handler
	Group     *group.Handler
	Holiday   *holiday.Handler
}

// RegisterAllRoutes mounts the complete HTTP surface under /api/v1.
// Project listing is readable by every authenticated user; all other
// admin resources sit behind the admin gate.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORSWithOrigins(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(metrics.HTTPMetricsMiddleware)

	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)
			sr.Post("/logout", h.Auth.Logout)
		})

		// Everything below requires a valid session
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Get("/users/me", h.User.Me)

			pr.Route("/time-entries", func(er chi.Router) {
				er.Get("/", h.TimeEntry.ListEntries)
				er.Post("/", h.TimeEntry.CreateEntry)
				er.Get("/running", h.TimeEntry.GetRunningEntry)
				er.Put("/{id}", h.TimeEntry.UpdateEntry)
				er.Delete("/{id}", h.TimeEntry.DeleteEntry)
			})

			pr.Post("/timer/start", h.TimeEntry.StartTimer)
			pr.Post("/timer/stop", h.TimeEntry.StopTimer)

			pr.Get("/balance", h.Balance.GetBalance)

			pr.Get("/reports/data", h.Report.GetReportData)
			pr.Get("/reports/export", h.Report.ExportReport)

			// Entry pickers need the project list
			pr.Get("/projects", h.Project.ListProjects)
			pr.Get("/projects/{id}", h.Project.GetProject)

			// Admin-only management surface
			pr.Group(func(ar chi.Router) {
				ar.Use(h.Auth.RequireAdmin)

				ar.Post("/projects", h.Project.CreateProject)
				ar.Put("/projects/{id}", h.Project.UpdateProject)
				ar.Delete("/projects/{id}", h.Project.DeleteProject)

				ar.Route("/groups", func(gr chi.Router) {
					gr.Get("/", h.Group.ListGroups)
					gr.Post("/", h.Group.CreateGroup)
					gr.Get("/{id}", h.Group.GetGroup)
					gr.Put("/{id}", h.Group.UpdateGroup)
					gr.Delete("/{id}", h.Group.DeleteGroup)
				})

				ar.Route("/holidays", func(hr chi.Router) {
					hr.Get("/", h.Holiday.ListHolidays)
					hr.Post("/", h.Holiday.CreateHoliday)
					hr.Put("/{id}", h.Holiday.UpdateHoliday)
					hr.Delete("/{id}", h.Holiday.DeleteHoliday)
				})

				ar.Route("/users", func(ur chi.Router) {
					ur.Get("/", h.User.ListUsers)
					ur.Post("/", h.User.CreateUser)
					ur.Get("/{id}", h.User.GetUser)
					ur.Put("/{id}", h.User.UpdateUser)
					ur.Delete("/{id}", h.User.DeleteUser)
				})
			})
		})
	})
}

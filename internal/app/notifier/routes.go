package notifier

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/billing-notifier/internal/config"
	"github.com/magabrotheeeer/billing-notifier/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/billing-notifier/internal/http/handlers/automation/configupdate"
	"github.com/magabrotheeeer/billing-notifier/internal/http/handlers/automation/cycle"
	"github.com/magabrotheeeer/billing-notifier/internal/http/handlers/automation/dryrun"
	"github.com/magabrotheeeer/billing-notifier/internal/http/handlers/automation/pause"
	"github.com/magabrotheeeer/billing-notifier/internal/http/handlers/automation/report"
	"github.com/magabrotheeeer/billing-notifier/internal/http/handlers/automation/reset"
	"github.com/magabrotheeeer/billing-notifier/internal/http/handlers/automation/resume"
	"github.com/magabrotheeeer/billing-notifier/internal/http/handlers/automation/start"
	"github.com/magabrotheeeer/billing-notifier/internal/http/handlers/automation/status"
	"github.com/magabrotheeeer/billing-notifier/internal/http/handlers/automation/stop"
	clientcreate "github.com/magabrotheeeer/billing-notifier/internal/http/handlers/client/create"
	clientlist "github.com/magabrotheeeer/billing-notifier/internal/http/handlers/client/list"
	invoicelist "github.com/magabrotheeeer/billing-notifier/internal/http/handlers/invoice/list"
	invoicepay "github.com/magabrotheeeer/billing-notifier/internal/http/handlers/invoice/pay"
	subcreate "github.com/magabrotheeeer/billing-notifier/internal/http/handlers/subscription/create"
	sublist "github.com/magabrotheeeer/billing-notifier/internal/http/handlers/subscription/list"
	"github.com/magabrotheeeer/billing-notifier/internal/http/middlewarectx"
	"github.com/magabrotheeeer/billing-notifier/internal/lib/jwt"
	"github.com/magabrotheeeer/billing-notifier/internal/services/automation"
	"github.com/magabrotheeeer/billing-notifier/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config,
	automationService *automation.Service, db *repository.Storage, maker jwt.Maker) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/login", login.New(logger, cfg.Admin, maker).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(maker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Post("/automation/start", start.New(logger, automationService).ServeHTTP)
			r.Post("/automation/stop", stop.New(logger, automationService).ServeHTTP)
			r.Post("/automation/pause", pause.New(logger, automationService).ServeHTTP)
			r.Post("/automation/resume", resume.New(logger, automationService).ServeHTTP)
			r.Post("/automation/reset", reset.New(logger, automationService).ServeHTTP)
			r.Post("/automation/cycle", cycle.New(logger, automationService).ServeHTTP)
			r.Post("/automation/dry-run", dryrun.New(logger, automationService).ServeHTTP)
			r.Get("/automation/status", status.New(logger, automationService).ServeHTTP)
			r.Patch("/automation/config", configupdate.New(logger, automationService).ServeHTTP)
			r.Get("/automation/report", report.New(logger, automationService).ServeHTTP)

			r.Post("/clients", clientcreate.New(logger, db).ServeHTTP)
			r.Get("/clients/list", clientlist.New(logger, db).ServeHTTP)
			r.Post("/subscriptions", subcreate.New(logger, db).ServeHTTP)
			r.Get("/subscriptions/list", sublist.New(logger, db).ServeHTTP)
			r.Get("/invoices/list", invoicelist.New(logger, db).ServeHTTP)
			r.Post("/invoices/{id}/pay", invoicepay.New(logger, db).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}

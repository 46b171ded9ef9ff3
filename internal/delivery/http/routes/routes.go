package routes

import (
	"job-portal/internal/delivery/http/handler"
	"job-portal/internal/delivery/http/middleware"
	"job-portal/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	Auth          *middleware.AuthMiddleware
	AuthLimiter   *middleware.RateLimiter
	Health        *handler.HealthHandler
	Publish       *handler.PublishRedirectHandler
	Users         *handler.AuthHandler
	Profiles      *handler.ProfileHandler
	Jobs          *handler.JobsHandler
	Companies     *handler.CompanyHandler
	Applications  *handler.ApplicationHandler
	SavedJobs     *handler.SavedJobHandler
	Dashboards    *handler.DashboardHandler
	Alerts        *handler.AlertHandler
	Notifications *handler.NotificationHandler
	WS            *ws.Handler
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerOps(app)
	r.registerAPI(app)
}

func (r *Registry) registerOps(app *fiber.App) {
	r.Health.RegisterRoutes(app)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	if r.WS != nil {
		app.Get("/ws", r.WS.Handle)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	r.Publish.RegisterRoutes(api)

	v1 := api.Group("/v1")
	var limiter fiber.Handler
	if r.AuthLimiter != nil {
		limiter = r.AuthLimiter.Middleware()
	}
	r.Users.RegisterRoutes(v1, limiter)
	r.Profiles.RegisterRoutes(v1, r.Auth)
	r.Jobs.RegisterRoutes(v1, r.Auth)
	r.Companies.RegisterRoutes(v1, r.Auth)
	r.Applications.RegisterRoutes(v1, r.Auth)
	r.SavedJobs.RegisterRoutes(v1, r.Auth)
	r.Dashboards.RegisterRoutes(v1, r.Auth)
	r.Alerts.RegisterRoutes(v1, r.Auth)
	r.Notifications.RegisterRoutes(v1, r.Auth)
}

package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"job-portal/internal/config"
	"job-portal/internal/delivery/http/handler"
	"job-portal/internal/delivery/http/middleware"
	"job-portal/internal/delivery/http/routes"
	"job-portal/internal/ws"

	"github.com/gofiber/fiber/v3"
	log "github.com/sirupsen/logrus"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the HTTP app over an already wired container.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c.Log)
	registry(c).Register(f)

	return &App{Fiber: f, Container: c}
}

// Bootstrap wires the container, starts the background workers and returns
// the app with a cleanup that stops them again.
func Bootstrap(cfg config.Config, l *log.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, l)
	if err != nil {
		return nil, func() error { return nil }, err
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	go c.Hub.Run(hubCtx)
	c.Scheduler.Start()

	cleanup := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		c.Scheduler.Stop(ctx)
		stopHub()
		return c.Close()
	}
	return New(c), cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, l log.FieldLogger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(l).Middleware())
	app.Use(middleware.Metrics())
	app.Use(middleware.NewErrorMiddleware(l).Middleware())
}

func registry(c *Container) *routes.Registry {
	authMw := middleware.NewAuthMiddleware(c.JWT, c.Profiles)
	return &routes.Registry{
		Auth:          authMw,
		AuthLimiter:   middleware.NewRateLimiter(c.Config.Auth.RateLimitPerSecond, c.Config.Auth.RateLimitBurst),
		Health:        handler.NewHealthHandler(c.DB, c.Cache),
		Publish:       handler.NewPublishRedirectHandler(c.JWT, c.Profiles, c.Jobs, c.Config.App.PublicBaseURL, c.Log),
		Users:         handler.NewAuthHandler(c.Auth),
		Profiles:      handler.NewProfileHandler(c.Auth, c.ProfileUC),
		Jobs:          handler.NewJobsHandler(c.JobList, c.Jobs, c.Applications),
		Companies:     handler.NewCompanyHandler(c.Companies),
		Applications:  handler.NewApplicationHandler(c.Applications),
		SavedJobs:     handler.NewSavedJobHandler(c.SavedJobs),
		Dashboards:    handler.NewDashboardHandler(c.Dashboards, c.Jobs),
		Alerts:        handler.NewAlertHandler(c.Alerts),
		Notifications: handler.NewNotificationHandler(c.Notifications),
		WS:            ws.NewHandler(c.Hub, c.Config.App.PublicBaseURL, c.Log),
	}
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}

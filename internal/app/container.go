package app

import (
	"context"
	"errors"
	"time"

	"job-portal/internal/config"
	"job-portal/internal/database"
	dbpostgres "job-portal/internal/database/postgres"
	"job-portal/internal/events"
	"job-portal/internal/infrastructure/cache"
	"job-portal/internal/pkg/jwt"
	"job-portal/internal/repository"
	"job-portal/internal/scheduler"
	"job-portal/internal/usecase"
	ucauth "job-portal/internal/usecase/auth"
	"job-portal/internal/ws"

	"github.com/asaskevich/EventBus"
	log "github.com/sirupsen/logrus"
)

// Container owns every long-lived dependency of the server process.
type Container struct {
	Config config.Config
	Log    *log.Logger
	DB     database.DB
	Cache  *cache.Redis
	Bus    EventBus.Bus
	Hub    *ws.Hub
	JWT    jwt.Service

	Profiles *cache.CachedProfiles

	Auth          usecase.AuthUsecase
	ProfileUC     usecase.ProfileUsecase
	Companies     usecase.CompanyUsecase
	Jobs          usecase.JobUsecase
	JobList       *usecase.JobList
	Applications  usecase.ApplicationUsecase
	SavedJobs     usecase.SavedJobUsecase
	Dashboards    usecase.DashboardUsecase
	Alerts        *usecase.AlertService
	Notifications *usecase.NotificationService

	Scheduler *scheduler.AlertScheduler
}

func NewContainer(cfg config.Config, l *log.Logger) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	c := &Container{
		Config: cfg,
		Log:    l,
		DB:     db,
		Cache:  cache.NewRedis(ctx, cfg.Redis, l),
		Bus:    events.New(),
		Hub:    ws.NewHub(l),
		JWT:    jwt.NewHMACService(cfg.JWT),
	}

	users := repository.NewPostgresUserRepository(db)
	c.Profiles = cache.NewCachedProfiles(repository.NewPostgresProfileRepository(db), cfg.App.ProfileCacheTTL)
	companies := repository.NewPostgresCompanyRepository(db)
	jobs := repository.NewPostgresJobRepository(db)
	applications := repository.NewPostgresApplicationRepository(db)
	saved := repository.NewPostgresSavedJobRepository(db)
	alerts := repository.NewPostgresAlertRepository(db)
	notifications := repository.NewPostgresNotificationRepository(db)

	c.Auth = usecase.NewAuthUsecase(ucauth.NewService(users), users, c.Profiles, c.JWT)
	c.ProfileUC = usecase.NewProfileUsecase(c.Profiles, l)
	c.Companies = usecase.NewCompanyUsecase(companies, jobs, l)
	c.Jobs = usecase.NewJobUsecase(jobs, companies, applications, saved, c.Bus, l)
	c.JobList = usecase.NewJobListUsecase(jobs, c.Cache, l)
	c.Applications = usecase.NewApplicationUsecase(applications, jobs, c.Bus, l)
	c.SavedJobs = usecase.NewSavedJobUsecase(saved, jobs, l)
	c.Dashboards = usecase.NewDashboardUsecase(applications, saved, jobs, companies, l)
	c.Alerts = usecase.NewAlertUsecase(alerts, jobs, notifications, l)
	c.Notifications = usecase.NewNotificationUsecase(notifications, l)

	if err := c.subscribe(); err != nil {
		_ = c.Close()
		return nil, err
	}

	c.Scheduler, err = scheduler.NewAlertScheduler(c.Alerts, cfg.Alerts.Schedule, l)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Container) subscribe() error {
	return errors.Join(
		c.JobList.SubscribeInvalidation(c.Bus),
		c.Notifications.SubscribeApplicationEvents(c.Bus),
		ws.Bridge(c.Bus, c.Hub),
	)
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}

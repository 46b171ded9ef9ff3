package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Alerts   AlertsConfig
}

type AppConfig struct {
	AppName         string
	Environment     string
	HTTPPort        string
	PublicBaseURL   string
	MigrationsDir   string
	ProfileCacheTTL time.Duration
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

type LoggerConfig struct {
	Level  string
	Format string
	File   string
}

type AuthConfig struct {
	RateLimitPerSecond float64
	RateLimitBurst     int
}

type AlertsConfig struct {
	Schedule string
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

// keys maps config paths to the environment variables that feed them.
var keys = map[string]string{
	"app.name":                    "APP_NAME",
	"app.env":                     "APP_ENV",
	"app.http_port":               "HTTP_PORT",
	"app.public_base_url":         "PUBLIC_BASE_URL",
	"app.migrations_dir":          "MIGRATIONS_DIR",
	"app.profile_cache_ttl":       "PROFILE_CACHE_TTL",
	"db.host":                     "DB_HOST",
	"db.port":                     "DB_PORT",
	"db.name":                     "DB_NAME",
	"db.user":                     "DB_USER",
	"db.password":                 "DB_PASSWORD",
	"db.ssl_mode":                 "DB_SSL_MODE",
	"db.connect_timeout":          "DB_CONNECT_TIMEOUT",
	"db.pool_max_conns":           "DB_POOL_MAX_CONNS",
	"db.pool_min_conns":           "DB_POOL_MIN_CONNS",
	"db.pool_max_conn_lifetime":   "DB_POOL_MAX_CONN_LIFETIME",
	"db.pool_max_conn_idle_time":  "DB_POOL_MAX_CONN_IDLE_TIME",
	"db.pool_health_check_period": "DB_POOL_HEALTH_CHECK_PERIOD",
	"redis.host":                  "REDIS_HOST",
	"redis.port":                  "REDIS_PORT",
	"redis.password":              "REDIS_PASSWORD",
	"redis.ttl":                   "REDIS_TTL",
	"jwt.access_secret":           "JWT_ACCESS_SECRET",
	"jwt.refresh_secret":          "JWT_REFRESH_SECRET",
	"jwt.access_expires_in":       "JWT_ACCESS_EXPIRES_IN",
	"jwt.refresh_expires_in":      "JWT_REFRESH_EXPIRES_IN",
	"logger.level":                "LOG_LEVEL",
	"logger.format":               "LOG_FORMAT",
	"logger.file":                 "LOG_FILE",
	"auth.rate_limit_per_second":  "AUTH_RATE_LIMIT_PER_SECOND",
	"auth.rate_limit_burst":       "AUTH_RATE_LIMIT_BURST",
	"alerts.schedule":             "ALERTS_SCHEDULE",
}

var required = []string{
	"app.name",
	"app.env",
	"app.http_port",
	"jwt.access_secret",
	"jwt.refresh_secret",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.migrations_dir", "migrations")
	v.SetDefault("app.profile_cache_ttl", time.Minute)
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.ssl_mode", "disable")
	v.SetDefault("db.connect_timeout", 5*time.Second)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.ttl", "600s")
	v.SetDefault("jwt.access_expires_in", 15*time.Minute)
	v.SetDefault("jwt.refresh_expires_in", 168*time.Hour)
	v.SetDefault("logger.level", "INFO")
	v.SetDefault("logger.format", "text")
	v.SetDefault("auth.rate_limit_per_second", 5.0)
	v.SetDefault("auth.rate_limit_burst", 10)
	v.SetDefault("alerts.schedule", "*/15 * * * *")
}

func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	var errs []error
	for key, env := range keys {
		if err := v.BindEnv(key, env); err != nil {
			errs = append(errs, fmt.Errorf("bind %s: %w", env, err))
		}
	}
	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}

	var missing []string
	for _, key := range required {
		if strings.TrimSpace(v.GetString(key)) == "" {
			missing = append(missing, keys[key])
		}
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	str := func(key string) string { return strings.TrimSpace(v.GetString(key)) }

	cfg := Config{}
	cfg.App = AppConfig{
		AppName:         str("app.name"),
		Environment:     str("app.env"),
		HTTPPort:        str("app.http_port"),
		PublicBaseURL:   strings.TrimRight(str("app.public_base_url"), "/"),
		MigrationsDir:   str("app.migrations_dir"),
		ProfileCacheTTL: v.GetDuration("app.profile_cache_ttl"),
	}
	cfg.Database = DatabaseConfig{
		DBHost:                str("db.host"),
		DBPort:                str("db.port"),
		DBName:                str("db.name"),
		DBUser:                str("db.user"),
		DBPassword:            v.GetString("db.password"),
		DBSSLMode:             str("db.ssl_mode"),
		ConnectTimeout:        v.GetDuration("db.connect_timeout"),
		PoolMaxConns:          v.GetInt32("db.pool_max_conns"),
		PoolMinConns:          v.GetInt32("db.pool_min_conns"),
		PoolMaxConnLifetime:   v.GetDuration("db.pool_max_conn_lifetime"),
		PoolMaxConnIdleTime:   v.GetDuration("db.pool_max_conn_idle_time"),
		PoolHealthCheckPeriod: v.GetDuration("db.pool_health_check_period"),
	}
	cfg.Redis = RedisConfig{
		Host:     str("redis.host"),
		Port:     str("redis.port"),
		Password: v.GetString("redis.password"),
		TTL:      secondsOrDuration(v, "redis.ttl"),
	}
	cfg.JWT = JWTConfig{
		AccessSecret:     v.GetString("jwt.access_secret"),
		RefreshSecret:    v.GetString("jwt.refresh_secret"),
		AccessExpiresIn:  v.GetDuration("jwt.access_expires_in"),
		RefreshExpiresIn: v.GetDuration("jwt.refresh_expires_in"),
	}
	cfg.Logger = LoggerConfig{
		Level:  strings.ToUpper(str("logger.level")),
		Format: strings.ToLower(str("logger.format")),
		File:   str("logger.file"),
	}
	cfg.Auth = AuthConfig{
		RateLimitPerSecond: v.GetFloat64("auth.rate_limit_per_second"),
		RateLimitBurst:     v.GetInt("auth.rate_limit_burst"),
	}
	cfg.Alerts = AlertsConfig{Schedule: str("alerts.schedule")}

	return cfg, nil
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.App.Environment, "production")
}

// REDIS_TTL is historically given in plain seconds.
func secondsOrDuration(v *viper.Viper, key string) time.Duration {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return 0
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return time.Duration(v.GetInt(key)) * time.Second
}

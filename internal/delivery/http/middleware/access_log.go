package middleware

import (
	"time"

	"job-portal/internal/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const RequestIDHeader = "X-Request-ID"

type AccessLogMiddleware struct {
	log log.FieldLogger
}

func NewAccessLogMiddleware(l log.FieldLogger) *AccessLogMiddleware {
	if l == nil {
		l = logger.Discard()
	}
	return &AccessLogMiddleware{log: l}
}

func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get(RequestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(RequestIDHeader, rid)

		err := c.Next()

		m.log.WithFields(log.Fields{
			"rid":        rid,
			"ip":         c.IP(),
			"method":     c.Method(),
			"path":       c.OriginalURL(),
			"status":     c.Response().StatusCode(),
			"latency":    time.Since(start).String(),
			"req_bytes":  c.Request().Header.ContentLength(),
			"resp_bytes": len(c.Response().Body()),
			"ua":         c.Get("User-Agent"),
		}).Info("HTTP access")

		return err
	}
}

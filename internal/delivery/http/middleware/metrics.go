package middleware

import (
	"strconv"
	"time"

	"job-portal/internal/metrics"

	"github.com/gofiber/fiber/v3"
)

// Metrics records request counts and latency per route pattern.
func Metrics() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		route := c.Route().Path
		if route == "" {
			route = "unmatched"
		}
		status := c.Response().StatusCode()
		if err != nil {
			if appErr, ok := err.(*AppError); ok && appErr.StatusCode > 0 {
				status = appErr.StatusCode
			}
		}

		metrics.HTTPRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		metrics.HTTPDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

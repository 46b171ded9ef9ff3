package handler

import (
	"context"
	"time"

	"job-portal/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// Pinger is anything the health check can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    Pinger
	cache Pinger
}

// NewHealthHandler takes the database and an optional cache; a nil cache is skipped.
func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/health", h.Check)
}

// Check reports 503 when the database is down. The cache is informational only.
func (h *HealthHandler) Check(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	status := fiber.Map{"database": "up", "cache": "disabled"}
	code := fiber.StatusOK
	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			status["database"] = "down"
			code = fiber.StatusServiceUnavailable
		}
	}
	if h.cache != nil {
		status["cache"] = "up"
		if err := h.cache.Ping(ctx); err != nil {
			status["cache"] = "down"
		}
	}
	msg := response.MessageOK
	if code != fiber.StatusOK {
		msg = "service unavailable"
	}
	return response.Success(c, code, msg, status)
}

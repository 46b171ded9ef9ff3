package handler

import (
	"job-portal/internal/delivery/http/dto"
	"job-portal/internal/delivery/http/middleware"
	"job-portal/internal/pkg/response"
	"job-portal/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AlertHandler struct {
	uc usecase.AlertUsecase
}

func NewAlertHandler(uc usecase.AlertUsecase) *AlertHandler {
	return &AlertHandler{uc: uc}
}

func (h *AlertHandler) RegisterRoutes(r fiber.Router, authMw *middleware.AuthMiddleware) {
	if r == nil {
		return
	}

	grp := r.Group("/alerts", authMw.Middleware(), authMw.RequireProfile())
	grp.Get("/", h.List)
	grp.Post("/", h.Create)
	grp.Put("/:id", h.Update)
	grp.Delete("/:id", h.Delete)
}

func (h *AlertHandler) List(c fiber.Ctx) error {
	items, err := h.uc.List(c.Context(), middleware.Actor(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAlertResponses(items))
}

func (h *AlertHandler) Create(c fiber.Ctx) error {
	var req dto.AlertRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	a, err := h.uc.Create(c.Context(), middleware.Actor(c), req.Input())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, dto.NewAlertResponse(a))
}

func (h *AlertHandler) Update(c fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	var req dto.AlertRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	a, err := h.uc.Update(c.Context(), middleware.Actor(c), id, req.Input())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAlertResponse(a))
}

func (h *AlertHandler) Delete(c fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), middleware.Actor(c), id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

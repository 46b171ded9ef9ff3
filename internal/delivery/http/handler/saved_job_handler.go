package handler

import (
	"job-portal/internal/delivery/http/dto"
	"job-portal/internal/delivery/http/middleware"
	"job-portal/internal/pkg/response"
	"job-portal/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SavedJobHandler struct {
	uc usecase.SavedJobUsecase
}

func NewSavedJobHandler(uc usecase.SavedJobUsecase) *SavedJobHandler {
	return &SavedJobHandler{uc: uc}
}

func (h *SavedJobHandler) RegisterRoutes(r fiber.Router, authMw *middleware.AuthMiddleware) {
	if r == nil {
		return
	}

	grp := r.Group("/saved-jobs", authMw.Middleware(), authMw.RequireProfile())
	grp.Get("/", h.List)
	grp.Post("/:jobId/toggle", h.Toggle)
	grp.Delete("/:jobId", h.Remove)
}

func (h *SavedJobHandler) List(c fiber.Ctx) error {
	items, err := h.uc.List(c.Context(), middleware.Actor(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSavedJobResponses(items))
}

func (h *SavedJobHandler) Toggle(c fiber.Ctx) error {
	jobID, err := paramUUID(c, "jobId")
	if err != nil {
		return err
	}

	saved, err := h.uc.Toggle(c.Context(), middleware.Actor(c), jobID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"saved": saved})
}

func (h *SavedJobHandler) Remove(c fiber.Ctx) error {
	jobID, err := paramUUID(c, "jobId")
	if err != nil {
		return err
	}

	if err := h.uc.Remove(c.Context(), middleware.Actor(c), jobID); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

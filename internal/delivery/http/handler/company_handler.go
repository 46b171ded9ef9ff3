package handler

import (
	"job-portal/internal/delivery/http/dto"
	"job-portal/internal/delivery/http/middleware"
	"job-portal/internal/pkg/response"
	"job-portal/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type CompanyHandler struct {
	uc usecase.CompanyUsecase
}

func NewCompanyHandler(uc usecase.CompanyUsecase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

func (h *CompanyHandler) RegisterRoutes(r fiber.Router, authMw *middleware.AuthMiddleware) {
	if r == nil {
		return
	}

	grp := r.Group("/companies")
	grp.Get("/", h.List)
	grp.Get("/industries", h.Industries)
	grp.Get("/mine", authMw.Middleware(), authMw.RequireProfile(), h.GetMine)
	grp.Get("/:id", h.Get)
	grp.Post("/", authMw.Middleware(), authMw.RequireProfile(), h.Create)
	grp.Put("/:id", authMw.Middleware(), authMw.RequireProfile(), h.Update)
}

func (h *CompanyHandler) List(c fiber.Ctx) error {
	items, err := h.uc.List(c.Context(), c.Query("search"), c.Query("industry"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCompanyResponses(items))
}

func (h *CompanyHandler) Industries(c fiber.Ctx) error {
	items, err := h.uc.Industries(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *CompanyHandler) Get(c fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	d, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCompanyDetailResponse(d))
}

func (h *CompanyHandler) GetMine(c fiber.Ctx) error {
	co, err := h.uc.GetMine(c.Context(), middleware.Actor(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCompanyResponse(co))
}

func (h *CompanyHandler) Create(c fiber.Ctx) error {
	var req dto.CompanyRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	co, err := h.uc.Create(c.Context(), middleware.Actor(c), req.Input())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, dto.NewCompanyResponse(co))
}

func (h *CompanyHandler) Update(c fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	var req dto.CompanyRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	co, err := h.uc.Update(c.Context(), middleware.Actor(c), id, req.Input())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCompanyResponse(co))
}

package handler

import (
	"job-portal/internal/delivery/http/dto"
	"job-portal/internal/delivery/http/middleware"
	"job-portal/internal/pkg/response"
	"job-portal/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type DashboardHandler struct {
	dashboards usecase.DashboardUsecase
	jobs       usecase.JobUsecase
}

func NewDashboardHandler(dashboards usecase.DashboardUsecase, jobs usecase.JobUsecase) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards, jobs: jobs}
}

func (h *DashboardHandler) RegisterRoutes(r fiber.Router, authMw *middleware.AuthMiddleware) {
	if r == nil {
		return
	}

	grp := r.Group("/dashboard", authMw.Middleware(), authMw.RequireProfile())
	grp.Get("/", h.Seeker)
	grp.Get("/employer", h.Employer)
	grp.Get("/employer/jobs", h.EmployerJobs)
}

func (h *DashboardHandler) Seeker(c fiber.Ctx) error {
	d, err := h.dashboards.Seeker(c.Context(), *middleware.CurrentProfile(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSeekerDashboardResponse(d))
}

func (h *DashboardHandler) Employer(c fiber.Ctx) error {
	d, err := h.dashboards.Employer(c.Context(), *middleware.CurrentProfile(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewEmployerDashboardResponse(d))
}

func (h *DashboardHandler) EmployerJobs(c fiber.Ctx) error {
	tab := c.Query("tab", usecase.TabAll)
	res, err := h.jobs.ListForEmployer(c.Context(), middleware.Actor(c), tab)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewEmployerJobsResponse(res))
}

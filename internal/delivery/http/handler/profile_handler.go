package handler

import (
	"job-portal/internal/delivery/http/dto"
	"job-portal/internal/delivery/http/middleware"
	"job-portal/internal/pkg/response"
	"job-portal/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ProfileHandler struct {
	auth     usecase.AuthUsecase
	profiles usecase.ProfileUsecase
}

func NewProfileHandler(auth usecase.AuthUsecase, profiles usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{auth: auth, profiles: profiles}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router, authMw *middleware.AuthMiddleware) {
	if r == nil {
		return
	}

	me := r.Group("/me", authMw.Middleware())
	me.Get("/", h.GetMe)
	me.Put("/", authMw.RequireProfile(), h.UpdateMe)

	onboarding := r.Group("/onboarding", authMw.Middleware(), authMw.RequireProfile())
	onboarding.Post("/job-seeker", h.OnboardJobSeeker)
	onboarding.Post("/employer", h.OnboardEmployer)

	r.Get("/profiles/:id", authMw.Optional(), h.GetPublic)
}

// GetMe returns the session view: user, profile, role and completeness.
func (h *ProfileHandler) GetMe(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	s, err := h.auth.Me(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSessionResponse(s))
}

func (h *ProfileHandler) UpdateMe(c fiber.Ctx) error {
	var req dto.ProfileRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	p, err := h.profiles.UpdateMe(c.Context(), *middleware.CurrentProfile(c), req.Input())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfileResponse(p))
}

func (h *ProfileHandler) OnboardJobSeeker(c fiber.Ctx) error {
	var req dto.ProfileRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	p, err := h.profiles.OnboardJobSeeker(c.Context(), *middleware.CurrentProfile(c), req.Input())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfileResponse(p))
}

func (h *ProfileHandler) OnboardEmployer(c fiber.Ctx) error {
	var req dto.EmployerOnboardingRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	p, co, err := h.profiles.OnboardEmployer(c.Context(), *middleware.CurrentProfile(c), req.Profile.Input(), req.Company.Input())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, fiber.Map{
		"profile": dto.NewProfileResponse(p),
		"company": dto.NewCompanyResponse(co),
	})
}

func (h *ProfileHandler) GetPublic(c fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	actor := middleware.Actor(c)
	p, err := h.profiles.GetPublic(c.Context(), actor, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewPublicProfileResponse(p, actor.ProfileID == p.ID))
}

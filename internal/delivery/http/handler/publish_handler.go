package handler

import (
	"errors"

	"job-portal/internal/delivery/http/middleware"
	"job-portal/internal/domain/policy"
	"job-portal/internal/domain/profile"
	"job-portal/internal/logger"
	"job-portal/internal/pkg/jwt"
	"job-portal/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	loginPath        = "/login"
	dashboardPath    = "/dashboard"
	employerJobsPath = "/dashboard/employer/jobs"
)

// PublishRedirectHandler serves the form-post flavour of job publishing.
// Every outcome is a 303 redirect; it never answers with a JSON error.
type PublishRedirectHandler struct {
	jwt      jwt.Service
	profiles middleware.ProfileLoader
	jobs     usecase.JobUsecase
	baseURL  string
	log      log.FieldLogger
}

func NewPublishRedirectHandler(jwtSvc jwt.Service, profiles middleware.ProfileLoader, jobs usecase.JobUsecase, baseURL string, l log.FieldLogger) *PublishRedirectHandler {
	if l == nil {
		l = logger.Discard()
	}
	return &PublishRedirectHandler{jwt: jwtSvc, profiles: profiles, jobs: jobs, baseURL: baseURL, log: l}
}

func (h *PublishRedirectHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/jobs/:id/publish", h.Publish)
}

func (h *PublishRedirectHandler) Publish(c fiber.Ctx) error {
	token, ok := middleware.BearerToken(c.Get("Authorization"))
	if !ok {
		return h.redirect(c, loginPath)
	}
	claims, err := h.jwt.ValidateAccessToken(token)
	if err != nil {
		return h.redirect(c, loginPath)
	}

	p, err := h.profiles.GetByUserID(c.Context(), claims.UserID)
	if err != nil {
		if !errors.Is(err, profile.ErrNotFound) {
			h.log.WithField(logger.ErrorTypeField, logger.ErrorTypeDB).WithError(err).Error("load profile for publish failed")
		}
		return h.redirect(c, dashboardPath)
	}
	if p.UserType != profile.UserTypeEmployer {
		return h.redirect(c, dashboardPath)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return h.redirect(c, employerJobsPath)
	}

	_, err = h.jobs.Publish(c.Context(), policy.ActorFrom(&p), id)
	switch {
	case err == nil:
		return h.redirect(c, "/jobs/"+id.String())
	case errors.Is(err, usecase.ErrNotFound), errors.Is(err, usecase.ErrForbidden), errors.Is(err, usecase.ErrWrongRole):
		return h.redirect(c, employerJobsPath)
	default:
		return h.redirect(c, "/jobs/"+id.String()+"/preview?error=publish")
	}
}

func (h *PublishRedirectHandler) redirect(c fiber.Ctx, path string) error {
	return c.Redirect().Status(fiber.StatusSeeOther).To(h.baseURL + path)
}

package handler

import (
	"context"

	"job-portal/internal/delivery/http/dto"
	"job-portal/internal/delivery/http/middleware"
	"job-portal/internal/domain/job"
	"job-portal/internal/domain/policy"
	"job-portal/internal/pkg/response"
	"job-portal/internal/search"
	"job-portal/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type JobsHandler struct {
	list         usecase.JobListUsecase
	jobs         usecase.JobUsecase
	applications usecase.ApplicationUsecase
}

func NewJobsHandler(list usecase.JobListUsecase, jobs usecase.JobUsecase, applications usecase.ApplicationUsecase) *JobsHandler {
	return &JobsHandler{list: list, jobs: jobs, applications: applications}
}

func (h *JobsHandler) RegisterRoutes(r fiber.Router, authMw *middleware.AuthMiddleware) {
	if r == nil {
		return
	}

	grp := r.Group("/jobs")
	grp.Get("/", h.HandleListJobs)
	grp.Get("/locations", h.HandleLocations)
	grp.Get("/categories", h.HandleCategories)
	grp.Get("/:id", authMw.Optional(), h.HandleGet)

	protected := grp.Group("", authMw.Middleware(), authMw.RequireProfile())
	protected.Post("/", h.HandleCreate)
	protected.Put("/:id", h.HandleUpdate)
	protected.Delete("/:id", h.HandleDelete)
	protected.Get("/:id/preview", h.HandlePreview)
	protected.Post("/:id/publish", h.HandlePublish)
	protected.Post("/:id/unpublish", h.HandleUnpublish)
	protected.Post("/:id/duplicate", h.HandleDuplicate)
	protected.Post("/:id/apply", h.HandleApply)
	protected.Get("/:id/applications", h.HandleListApplications)
}

func (h *JobsHandler) HandleListJobs(c fiber.Ctx) error {
	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	offset, err := parseQueryIntStrict(c, "offset", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	res, err := h.list.List(c.Context(), usecase.JobListParams{
		Query:           c.Query("q"),
		Location:        c.Query("location"),
		Category:        c.Query("category"),
		JobType:         job.Type(c.Query("type")),
		ExperienceLevel: job.ExperienceLevel(c.Query("experience")),
		LocationType:    job.LocationType(c.Query("locationType")),
		Sort:            search.SortKey(c.Query("sort")),
		Limit:           limit,
		Offset:          offset,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, response.Page[dto.JobResponse]{
		Items:  dto.NewJobResponses(res.Items),
		Total:  res.Total,
		Limit:  res.Limit,
		Offset: res.Offset,
	})
}

func (h *JobsHandler) HandleLocations(c fiber.Ctx) error {
	locs, err := h.list.Locations(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, locs)
}

func (h *JobsHandler) HandleCategories(c fiber.Ctx) error {
	counts, err := h.list.Categories(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, counts)
}

func (h *JobsHandler) HandleGet(c fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	v, err := h.jobs.GetPublic(c.Context(), middleware.Actor(c), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobDetailResponse(v))
}

func (h *JobsHandler) HandleCreate(c fiber.Ctx) error {
	var req dto.JobRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	j, err := h.jobs.Create(c.Context(), middleware.Actor(c), req.Input(), req.Publish)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, dto.NewJobResponse(j))
}

func (h *JobsHandler) HandleUpdate(c fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	var req dto.JobRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	j, err := h.jobs.Update(c.Context(), middleware.Actor(c), id, req.Input())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(j))
}

func (h *JobsHandler) HandleDelete(c fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.jobs.Delete(c.Context(), middleware.Actor(c), id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *JobsHandler) HandlePreview(c fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	v, err := h.jobs.Preview(c.Context(), middleware.Actor(c), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobDetailResponse(v))
}

func (h *JobsHandler) HandlePublish(c fiber.Ctx) error {
	return h.transition(c, h.jobs.Publish)
}

func (h *JobsHandler) HandleUnpublish(c fiber.Ctx) error {
	return h.transition(c, h.jobs.Unpublish)
}

func (h *JobsHandler) HandleDuplicate(c fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	j, err := h.jobs.Duplicate(c.Context(), middleware.Actor(c), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, dto.NewJobResponse(j))
}

func (h *JobsHandler) HandleApply(c fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	var req dto.ApplyRequest
	if len(c.Body()) > 0 {
		if err := bindBody(c, &req); err != nil {
			return err
		}
	}

	a, err := h.applications.Apply(c.Context(), middleware.Actor(c), id, usecase.ApplyInput{
		CoverLetter: req.CoverLetter,
		ResumeURL:   req.ResumeURL,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, dto.NewApplicationResponse(a))
}

func (h *JobsHandler) HandleListApplications(c fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	items, err := h.applications.ListForJob(c.Context(), middleware.Actor(c), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewReviewerApplicationResponses(items))
}

type jobTransition func(ctx context.Context, actor policy.Actor, id uuid.UUID) (job.Job, error)

func (h *JobsHandler) transition(c fiber.Ctx, fn jobTransition) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	j, err := fn(c.Context(), middleware.Actor(c), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(j))
}

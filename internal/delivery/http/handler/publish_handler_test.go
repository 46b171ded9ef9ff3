package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"job-portal/internal/domain/job"
	"job-portal/internal/domain/policy"
	"job-portal/internal/domain/profile"
	"job-portal/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type publishFixture struct {
	app      *fiber.App
	jobs     *mockJobs
	employer profile.Profile
	token    string
	seeker   string
	orphan   string
}

func newPublishFixture(t *testing.T, baseURL string) *publishFixture {
	t.Helper()
	jwtSvc := newJWT()

	employer := profile.Profile{ID: uuid.New(), UserID: uuid.New(), UserType: profile.UserTypeEmployer}
	seeker := profile.Profile{ID: uuid.New(), UserID: uuid.New(), UserType: profile.UserTypeJobSeeker}
	store := profileStore{employer.UserID: employer, seeker.UserID: seeker}

	pair, err := jwtSvc.GeneratePair(employer.UserID, "boss@example.com")
	require.NoError(t, err)
	seekerPair, err := jwtSvc.GeneratePair(seeker.UserID, "ada@example.com")
	require.NoError(t, err)
	orphanPair, err := jwtSvc.GeneratePair(uuid.New(), "ghost@example.com")
	require.NoError(t, err)

	jobs := &mockJobs{}
	app := fiber.New()
	NewPublishRedirectHandler(jwtSvc, store, jobs, baseURL, nil).RegisterRoutes(app.Group("/api"))

	return &publishFixture{
		app:      app,
		jobs:     jobs,
		employer: employer,
		token:    pair.AccessToken,
		seeker:   seekerPair.AccessToken,
		orphan:   orphanPair.AccessToken,
	}
}

func (f *publishFixture) post(t *testing.T, id, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/jobs/"+id+"/publish", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := f.app.Test(req)
	require.NoError(t, err)
	return res
}

func assertRedirect(t *testing.T, res *http.Response, location string) {
	t.Helper()
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, location, res.Header.Get("Location"))
}

func TestPublishRedirect_NoToken(t *testing.T) {
	f := newPublishFixture(t, "")
	assertRedirect(t, f.post(t, uuid.NewString(), ""), "/login")
	assertRedirect(t, f.post(t, uuid.NewString(), "garbage"), "/login")
	f.jobs.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestPublishRedirect_NotAnEmployer(t *testing.T) {
	f := newPublishFixture(t, "")
	assertRedirect(t, f.post(t, uuid.NewString(), f.seeker), "/dashboard")
	assertRedirect(t, f.post(t, uuid.NewString(), f.orphan), "/dashboard")
	f.jobs.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestPublishRedirect_Outcomes(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		location func(id uuid.UUID) string
	}{
		{"published", nil, func(id uuid.UUID) string { return "/jobs/" + id.String() }},
		{"missing job", usecase.ErrNotFound, func(uuid.UUID) string { return "/dashboard/employer/jobs" }},
		{"not the owner", usecase.ErrForbidden, func(uuid.UUID) string { return "/dashboard/employer/jobs" }},
		{"update failed", usecase.ErrInternal, func(id uuid.UUID) string { return "/jobs/" + id.String() + "/preview?error=publish" }},
		{"unexpected error", errors.New("boom"), func(id uuid.UUID) string { return "/jobs/" + id.String() + "/preview?error=publish" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPublishFixture(t, "")
			id := uuid.New()
			actor := policy.ActorFrom(&f.employer)
			f.jobs.On("Publish", mock.Anything, actor, id).Return(job.Job{ID: id, IsActive: tt.err == nil}, tt.err).Once()

			assertRedirect(t, f.post(t, id.String(), f.token), tt.location(id))
			f.jobs.AssertExpectations(t)
		})
	}
}

func TestPublishRedirect_BadID(t *testing.T) {
	f := newPublishFixture(t, "")
	assertRedirect(t, f.post(t, "not-a-uuid", f.token), "/dashboard/employer/jobs")
}

func TestPublishRedirect_PublicBaseURL(t *testing.T) {
	f := newPublishFixture(t, "https://jobs.example.com")
	id := uuid.New()
	f.jobs.On("Publish", mock.Anything, mock.Anything, id).Return(job.Job{ID: id, IsActive: true}, nil)

	assertRedirect(t, f.post(t, id.String(), f.token), "https://jobs.example.com/jobs/"+id.String())
	assertRedirect(t, f.post(t, id.String(), ""), "https://jobs.example.com/login")
}

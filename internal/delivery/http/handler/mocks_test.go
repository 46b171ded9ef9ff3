package handler

import (
	"context"
	"time"

	"job-portal/internal/config"
	"job-portal/internal/domain/job"
	"job-portal/internal/domain/policy"
	"job-portal/internal/domain/profile"
	"job-portal/internal/pkg/jwt"
	"job-portal/internal/usecase"
	ucauth "job-portal/internal/usecase/auth"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func newJWT() *jwt.HMACService {
	return jwt.NewHMACService(config.JWTConfig{
		AccessSecret:     "access-secret",
		RefreshSecret:    "refresh-secret",
		AccessExpiresIn:  15 * time.Minute,
		RefreshExpiresIn: time.Hour,
	})
}

type profileStore map[uuid.UUID]profile.Profile

func (s profileStore) GetByUserID(_ context.Context, userID uuid.UUID) (profile.Profile, error) {
	p, ok := s[userID]
	if !ok {
		return profile.Profile{}, profile.ErrNotFound
	}
	return p, nil
}

// mockJobs implements only what the handlers under test call; anything else panics.
type mockJobs struct {
	usecase.JobUsecase
	mock.Mock
}

func (m *mockJobs) Publish(ctx context.Context, actor policy.Actor, id uuid.UUID) (job.Job, error) {
	args := m.Called(ctx, actor, id)
	return args.Get(0).(job.Job), args.Error(1)
}

func (m *mockJobs) GetPublic(ctx context.Context, viewer policy.Actor, id uuid.UUID) (usecase.JobView, error) {
	args := m.Called(ctx, viewer, id)
	return args.Get(0).(usecase.JobView), args.Error(1)
}

type mockAuth struct {
	usecase.AuthUsecase
	mock.Mock
}

func (m *mockAuth) Register(ctx context.Context, in ucauth.RegisterInput) (usecase.AuthResult, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(usecase.AuthResult), args.Error(1)
}

func (m *mockAuth) Login(ctx context.Context, in ucauth.LoginInput) (usecase.AuthResult, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(usecase.AuthResult), args.Error(1)
}

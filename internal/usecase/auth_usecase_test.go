package usecase

import (
	"context"
	"testing"
	"time"

	"job-portal/internal/config"
	"job-portal/internal/domain/profile"
	"job-portal/internal/pkg/jwt"
	ucauth "job-portal/internal/usecase/auth"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture() (*Auth, *memDB) {
	db := newMemDB()
	svc := ucauth.NewServiceWithCost(memUsers{db}, bcrypt.MinCost)
	tokens := jwt.NewHMACService(config.JWTConfig{
		AccessSecret:     "access-secret",
		RefreshSecret:    "refresh-secret",
		AccessExpiresIn:  time.Minute,
		RefreshExpiresIn: time.Hour,
	})
	return NewAuthUsecase(svc, memUsers{db}, memProfiles{db}, tokens), db
}

func TestAuthUsecase_RegisterLoginMe(t *testing.T) {
	uc, _ := newAuthFixture()
	ctx := context.Background()

	res, err := uc.Register(ctx, ucauth.RegisterInput{
		Email:    " Ada@Example.com ",
		Password: "correct horse",
		UserType: profile.UserTypeEmployer,
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", res.User.Email)
	assert.Empty(t, res.User.PasswordHash)
	assert.Equal(t, profile.UserTypeEmployer, res.Profile.UserType)
	assert.NotEmpty(t, res.Tokens.AccessToken)

	_, err = uc.Register(ctx, ucauth.RegisterInput{Email: "ada@example.com", Password: "another pass"})
	assert.ErrorIs(t, err, ucauth.ErrEmailAlreadyRegistered)

	_, err = uc.Login(ctx, ucauth.LoginInput{Email: "ada@example.com", Password: "wrong password"})
	assert.ErrorIs(t, err, ucauth.ErrInvalidCredentials)

	logged, err := uc.Login(ctx, ucauth.LoginInput{Email: "ADA@example.com", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, res.Profile.ID, logged.Profile.ID)

	session, err := uc.Me(ctx, res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, res.Profile.ID, session.Profile.ID)
	assert.Equal(t, 0, session.Completeness)

	_, err = uc.Me(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthUsecase_RegisterRules(t *testing.T) {
	uc, _ := newAuthFixture()
	ctx := context.Background()

	_, err := uc.Register(ctx, ucauth.RegisterInput{Email: "x@example.com", Password: "short"})
	assert.ErrorIs(t, err, ucauth.ErrInvalidInput)

	_, err = uc.Register(ctx, ucauth.RegisterInput{Email: "x@example.com", Password: "long enough", UserType: profile.UserTypeAdmin})
	assert.ErrorIs(t, err, ucauth.ErrInvalidInput)

	res, err := uc.Register(ctx, ucauth.RegisterInput{Email: "x@example.com", Password: "long enough"})
	require.NoError(t, err)
	assert.Equal(t, profile.UserTypeJobSeeker, res.Profile.UserType)
}

func TestAuthUsecase_Refresh(t *testing.T) {
	uc, _ := newAuthFixture()
	ctx := context.Background()

	res, err := uc.Register(ctx, ucauth.RegisterInput{Email: "r@example.com", Password: "long enough"})
	require.NoError(t, err)

	pair, err := uc.Refresh(ctx, res.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)

	_, err = uc.Refresh(ctx, res.Tokens.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	_, err = uc.Refresh(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

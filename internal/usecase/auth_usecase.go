package usecase

import (
	"context"
	"errors"

	"job-portal/internal/domain/profile"
	"job-portal/internal/domain/user"
	"job-portal/internal/pkg/jwt"
	"job-portal/internal/repository"
	ucauth "job-portal/internal/usecase/auth"

	"github.com/google/uuid"
)

type AuthResult struct {
	User    user.User
	Profile profile.Profile
	Tokens  jwt.TokenPair
}

type Session struct {
	User         user.User
	Profile      profile.Profile
	Completeness int
}

type AuthUsecase interface {
	Register(ctx context.Context, in ucauth.RegisterInput) (AuthResult, error)
	Login(ctx context.Context, in ucauth.LoginInput) (AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (jwt.TokenPair, error)
	Me(ctx context.Context, userID uuid.UUID) (Session, error)
}

type Auth struct {
	authSvc  *ucauth.Service
	users    repository.UserRepository
	profiles ProfileReader
	jwt      jwt.Service
}

// ProfileReader is the read side the auth flow needs; satisfied by the cached profile store.
type ProfileReader interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (profile.Profile, error)
}

func NewAuthUsecase(svc *ucauth.Service, users repository.UserRepository, profiles ProfileReader, jwtSvc jwt.Service) *Auth {
	return &Auth{authSvc: svc, users: users, profiles: profiles, jwt: jwtSvc}
}

func (u *Auth) Register(ctx context.Context, in ucauth.RegisterInput) (AuthResult, error) {
	usr, p, err := u.authSvc.Register(ctx, in)
	if err != nil {
		return AuthResult{}, err
	}

	pair, err := u.jwt.GeneratePair(usr.ID, usr.Email)
	if err != nil {
		return AuthResult{}, ErrInternal
	}
	return AuthResult{User: usr, Profile: p, Tokens: pair}, nil
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (AuthResult, error) {
	usr, err := u.authSvc.Login(ctx, in)
	if err != nil {
		return AuthResult{}, err
	}

	p, err := u.profiles.GetByUserID(ctx, usr.ID)
	if err != nil {
		return AuthResult{}, ErrInternal
	}

	pair, err := u.jwt.GeneratePair(usr.ID, usr.Email)
	if err != nil {
		return AuthResult{}, ErrInternal
	}
	return AuthResult{User: usr, Profile: p, Tokens: pair}, nil
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (jwt.TokenPair, error) {
	if refreshToken == "" {
		return jwt.TokenPair{}, ErrUnauthorized
	}

	claims, err := u.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return jwt.TokenPair{}, ErrRefreshTokenExpired
		}
		return jwt.TokenPair{}, ErrInvalidRefreshToken
	}

	usr, err := u.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return jwt.TokenPair{}, ErrInvalidRefreshToken
		}
		return jwt.TokenPair{}, ErrInternal
	}

	pair, err := u.jwt.GeneratePair(usr.ID, usr.Email)
	if err != nil {
		return jwt.TokenPair{}, ErrInternal
	}
	return pair, nil
}

func (u *Auth) Me(ctx context.Context, userID uuid.UUID) (Session, error) {
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Session{}, ErrUnauthorized
		}
		return Session{}, ErrInternal
	}
	usr.PasswordHash = ""

	p, err := u.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return Session{}, ErrNotFound
		}
		return Session{}, ErrInternal
	}
	return Session{User: usr, Profile: p, Completeness: profile.Completeness(&p)}, nil
}

package middleware

import (
	"context"
	"errors"
	"strings"

	"job-portal/internal/domain/policy"
	"job-portal/internal/domain/profile"
	"job-portal/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const (
	CtxUserIDKey  = "user_id"
	CtxEmailKey   = "email"
	CtxProfileKey = "profile"
)

type ProfileLoader interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (profile.Profile, error)
}

type AuthMiddleware struct {
	jwt      jwt.Service
	profiles ProfileLoader
}

func NewAuthMiddleware(jwtSvc jwt.Service, profiles ProfileLoader) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc, profiles: profiles}
}

// Middleware rejects requests without a valid access token.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := BearerToken(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		claims, err := m.jwt.ValidateAccessToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
			}
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
		}

		if err := m.attach(c, claims); err != nil {
			return err
		}
		return c.Next()
	}
}

// Optional identifies the caller when a valid token is present and lets
// everyone else through anonymously.
func (m *AuthMiddleware) Optional() fiber.Handler {
	return func(c fiber.Ctx) error {
		if token, ok := BearerToken(c.Get("Authorization")); ok {
			if claims, err := m.jwt.ValidateAccessToken(token); err == nil {
				if err := m.attach(c, claims); err != nil {
					return err
				}
			}
		}
		return c.Next()
	}
}

// RequireProfile must run after Middleware.
func (m *AuthMiddleware) RequireProfile() fiber.Handler {
	return func(c fiber.Ctx) error {
		if CurrentProfile(c) == nil {
			return NewAppError(fiber.StatusNotFound, "Profile not found", nil, nil)
		}
		return c.Next()
	}
}

func (m *AuthMiddleware) attach(c fiber.Ctx, claims jwt.Claims) error {
	c.Locals(CtxUserIDKey, claims.UserID)
	c.Locals(CtxEmailKey, claims.Email)

	if m.profiles == nil {
		return nil
	}
	p, err := m.profiles.GetByUserID(c.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return nil
		}
		return NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}
	c.Locals(CtxProfileKey, &p)
	return nil
}

func UserID(c fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(CtxUserIDKey).(uuid.UUID)
	return id, ok && id != uuid.Nil
}

func CurrentProfile(c fiber.Ctx) *profile.Profile {
	p, _ := c.Locals(CtxProfileKey).(*profile.Profile)
	return p
}

// Actor is the anonymous actor when no profile is attached.
func Actor(c fiber.Ctx) policy.Actor {
	return policy.ActorFrom(CurrentProfile(c))
}

func BearerToken(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}

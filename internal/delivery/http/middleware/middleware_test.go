package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"job-portal/internal/config"
	"job-portal/internal/domain/profile"
	"job-portal/internal/pkg/jwt"
	"job-portal/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type profiles map[uuid.UUID]profile.Profile

func (p profiles) GetByUserID(_ context.Context, id uuid.UUID) (profile.Profile, error) {
	if v, ok := p[id]; ok {
		return v, nil
	}
	return profile.Profile{}, profile.ErrNotFound
}

func newApp() *fiber.App {
	app := fiber.New()
	app.Use(NewErrorMiddleware(nil).Middleware())
	return app
}

func do(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, response.SemanticResponse) {
	t.Helper()
	res, err := app.Test(req)
	require.NoError(t, err)
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	var env response.SemanticResponse
	if len(body) > 0 {
		require.NoError(t, json.Unmarshal(body, &env), string(body))
	}
	return res, env
}

func TestErrorMiddleware(t *testing.T) {
	app := newApp()
	app.Get("/conflict", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusConflict, "Already there", fiber.Map{"id": 1}, nil)
	})
	app.Get("/internal", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusInternalServerError, "db password leaked", nil, errors.New("pq: boom"))
	})
	app.Get("/plain", func(c fiber.Ctx) error { return errors.New("anything") })
	app.Get("/fiber", func(c fiber.Ctx) error { return fiber.ErrNotFound })
	app.Get("/panic", func(c fiber.Ctx) error { panic("kaboom") })

	res, env := do(t, app, httptest.NewRequest(http.MethodGet, "/conflict", nil))
	assert.Equal(t, fiber.StatusConflict, res.StatusCode)
	assert.Equal(t, "Already there", env.Message)
	assert.Equal(t, map[string]any{"id": float64(1)}, env.Data)

	for _, path := range []string{"/internal", "/plain", "/panic"} {
		res, env = do(t, app, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, fiber.StatusInternalServerError, res.StatusCode, path)
		assert.Equal(t, response.MessageInternalServerError, env.Message, path)
		assert.Nil(t, env.Data, path)
	}

	res, env = do(t, app, httptest.NewRequest(http.MethodGet, "/fiber", nil))
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)
	assert.Equal(t, fiber.StatusNotFound, env.Status)
}

func newJWT() *jwt.HMACService {
	return jwt.NewHMACService(config.JWTConfig{
		AccessSecret:     "access",
		RefreshSecret:    "refresh",
		AccessExpiresIn:  time.Minute,
		RefreshExpiresIn: time.Hour,
	})
}

func TestAuthMiddleware(t *testing.T) {
	jwtSvc := newJWT()
	known := profile.Profile{ID: uuid.New(), UserID: uuid.New(), UserType: profile.UserTypeEmployer}
	m := NewAuthMiddleware(jwtSvc, profiles{known.UserID: known})

	app := newApp()
	app.Get("/private", m.Middleware(), m.RequireProfile(), func(c fiber.Ctx) error {
		return c.SendString(string(Actor(c).Role))
	})
	app.Get("/public", m.Optional(), func(c fiber.Ctx) error {
		if Actor(c).Anonymous() {
			return c.SendString("anonymous")
		}
		return c.SendString(CurrentProfile(c).ID.String())
	})

	bearer := func(path, token string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		return req
	}
	body := func(res *http.Response) string {
		b, _ := io.ReadAll(res.Body)
		return string(b)
	}

	pair, err := jwtSvc.GeneratePair(known.UserID, "boss@example.com")
	require.NoError(t, err)
	stranger, err := jwtSvc.GeneratePair(uuid.New(), "who@example.com")
	require.NoError(t, err)

	res, _ := do(t, app, bearer("/private", ""))
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)

	res, _ = do(t, app, bearer("/private", pair.RefreshToken))
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)

	res, env := do(t, app, bearer("/private", stranger.AccessToken))
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)
	assert.Equal(t, "Profile not found", env.Message)

	res, err = app.Test(bearer("/private", pair.AccessToken))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
	assert.Equal(t, "employer", body(res))

	res, err = app.Test(bearer("/public", "not-a-token"))
	require.NoError(t, err)
	assert.Equal(t, "anonymous", body(res))

	res, err = app.Test(bearer("/public", pair.AccessToken))
	require.NoError(t, err)
	assert.Equal(t, known.ID.String(), body(res))
}

func TestBearerToken(t *testing.T) {
	tok, ok := BearerToken("Bearer abc")
	assert.True(t, ok)
	assert.Equal(t, "abc", tok)

	tok, ok = BearerToken("  bearer   xyz ")
	assert.True(t, ok)
	assert.Equal(t, "xyz", tok)

	for _, h := range []string{"", "Bearer", "Bearer   ", "Basic abc", "abc"} {
		_, ok := BearerToken(h)
		assert.False(t, ok, h)
	}
}

func TestRateLimiter(t *testing.T) {
	app := newApp()
	app.Post("/login", NewRateLimiter(0.001, 2).Middleware(), func(c fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	for i := 0; i < 2; i++ {
		res, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, res.StatusCode)
	}

	res, env := do(t, app, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, fiber.StatusTooManyRequests, res.StatusCode)
	assert.Equal(t, "1", res.Header.Get(fiber.HeaderRetryAfter))
	assert.Equal(t, response.MessageTooManyRequests, env.Message)
}

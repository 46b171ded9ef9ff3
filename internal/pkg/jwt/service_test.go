package jwt

import (
	"testing"
	"time"

	"job-portal/internal/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() *HMACService {
	return NewHMACService(config.JWTConfig{
		AccessSecret:     "access-secret",
		RefreshSecret:    "refresh-secret",
		AccessExpiresIn:  15 * time.Minute,
		RefreshExpiresIn: 24 * time.Hour,
	})
}

func TestGeneratePair_RoundTrip(t *testing.T) {
	s := newService()
	userID := uuid.New()

	pair, err := s.GeneratePair(userID, "ada@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.True(t, pair.RefreshExpiresAt.After(pair.AccessExpiresAt))

	claims, err := s.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)

	claims, err = s.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
}

func TestValidate_RejectsWrongTokenType(t *testing.T) {
	s := newService()
	pair, err := s.GeneratePair(uuid.New(), "x@example.com")
	require.NoError(t, err)

	_, err = s.ValidateAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = s.ValidateRefreshToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidate_Expired(t *testing.T) {
	s := newService()
	issued := time.Now().Add(-time.Hour)
	s.now = func() time.Time { return issued }

	pair, err := s.GeneratePair(uuid.New(), "x@example.com")
	require.NoError(t, err)

	s.now = time.Now
	_, err = s.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenExpired)

	_, err = s.ValidateRefreshToken(pair.RefreshToken)
	assert.NoError(t, err)
}

func TestValidate_Garbage(t *testing.T) {
	s := newService()
	_, err := s.ValidateAccessToken("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
	_, err = s.ValidateAccessToken("")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestGeneratePair_MissingSecret(t *testing.T) {
	s := NewHMACService(config.JWTConfig{AccessExpiresIn: time.Minute, RefreshExpiresIn: time.Minute})
	_, err := s.GeneratePair(uuid.New(), "")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

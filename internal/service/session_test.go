package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mural/internal/config"
	"mural/internal/model"
)

func sessionFixture() *SessionService {
	return NewSessionService(&config.Config{
		JWTSecret:     "test-secret",
		SessionMaxAge: 3600,
	})
}

func TestSession_RoundTrip(t *testing.T) {
	svc := sessionFixture()

	picID := int64(33)
	identity := &model.Identity{
		UserID:       7,
		Username:     "carol",
		Email:        "carol@example.com",
		ProfilePicID: &picID,
	}

	token, err := svc.Mint(identity)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	resolved, err := svc.Resolve(token)
	require.NoError(t, err)
	assert.Equal(t, identity.UserID, resolved.UserID)
	assert.Equal(t, identity.Username, resolved.Username)
	assert.Equal(t, identity.Email, resolved.Email)
	require.NotNil(t, resolved.ProfilePicID)
	assert.Equal(t, picID, *resolved.ProfilePicID)
}

func TestSession_NoProfilePic(t *testing.T) {
	svc := sessionFixture()

	token, err := svc.Mint(&model.Identity{UserID: 7, Username: "carol", Email: "carol@example.com"})
	require.NoError(t, err)

	resolved, err := svc.Resolve(token)
	require.NoError(t, err)
	assert.Nil(t, resolved.ProfilePicID)
}

func TestSession_TamperedToken(t *testing.T) {
	svc := sessionFixture()

	token, err := svc.Mint(&model.Identity{UserID: 7, Username: "carol", Email: "carol@example.com"})
	require.NoError(t, err)

	_, err = svc.Resolve(token + "x")
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, err = svc.Resolve("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidSession)

	other := NewSessionService(&config.Config{JWTSecret: "other-secret", SessionMaxAge: 3600})
	_, err = other.Resolve(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSession_MaxAge(t *testing.T) {
	assert.Equal(t, 3600, sessionFixture().MaxAge())
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mural/internal/config"
	"mural/internal/model"
	"mural/internal/service"
)

func sessionFixture(t *testing.T) (*service.SessionService, string) {
	t.Helper()
	sessions := service.NewSessionService(&config.Config{JWTSecret: "test-secret", SessionMaxAge: 3600})
	token, err := sessions.Mint(&model.Identity{UserID: 7, Username: "carol", Email: "carol@example.com"})
	require.NoError(t, err)
	return sessions, token
}

func identityEcho(t *testing.T, got **model.Identity) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if identity, ok := GetIdentityFromContext(r.Context()); ok {
			*got = identity
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth_Cookie(t *testing.T) {
	sessions, token := sessionFixture(t)

	var got *model.Identity
	h := RequireAuth(sessions)(identityEcho(t, &got))

	req := httptest.NewRequest("GET", "/user", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, int64(7), got.UserID)
}

func TestRequireAuth_BearerFallback(t *testing.T) {
	sessions, token := sessionFixture(t)

	var got *model.Identity
	h := RequireAuth(sessions)(identityEcho(t, &got))

	req := httptest.NewRequest("GET", "/user", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, "carol", got.Username)
}

func TestRequireAuth_Rejections(t *testing.T) {
	sessions, _ := sessionFixture(t)
	h := RequireAuth(sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a session")
	}))

	req := httptest.NewRequest("GET", "/user", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest("GET", "/user", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "garbage"})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalAuth_AnonymousPassesThrough(t *testing.T) {
	sessions, token := sessionFixture(t)

	var got *model.Identity
	h := OptionalAuth(sessions)(identityEcho(t, &got))

	// No token: anonymous.
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/post", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, got)

	// Bad token: still anonymous, not an error.
	req := httptest.NewRequest("GET", "/post", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "garbage"})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, got)

	// Valid token: identity resolved.
	req = httptest.NewRequest("GET", "/post", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, int64(7), got.UserID)
}

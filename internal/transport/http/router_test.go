package http

import (
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"mural/internal/config"
	"mural/internal/handler"
	"mural/internal/service"
)

func routerFixture() stdhttp.Handler {
	sessions := service.NewSessionService(&config.Config{JWTSecret: "test-secret", SessionMaxAge: 3600})
	commentService := service.NewCommentService(nil, nil, nil, nil)
	reactionService := service.NewReactionService(nil, nil, nil)

	return NewRouter(RouterConfig{
		AuthHandler:     handler.NewAuthHandler(nil, sessions),
		UserHandler:     handler.NewUserHandler(nil, nil, nil, sessions),
		PostHandler:     handler.NewPostHandler(nil),
		CommentHandler:  handler.NewCommentHandler(commentService),
		ReactionHandler: handler.NewReactionHandler(reactionService),
		MediaHandler:    handler.NewMediaHandler(nil),
		Sessions:        sessions,
	})
}

func TestRouter_Health(t *testing.T) {
	rec := httptest.NewRecorder()
	routerFixture().ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, stdhttp.StatusOK, rec.Code)
}

func TestRouter_PostCommentAlias(t *testing.T) {
	router := routerFixture()

	// The GET alias reaches the comment listing: the handler's scope
	// validation answers, not a 404 or 405 from the mux.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/post/comment?postId=1&commentId=2", nil))
	assert.Equal(t, stdhttp.StatusBadRequest, rec.Code)

	// The POST alias sits behind authentication like /comment itself.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/post/comment", nil))
	assert.Equal(t, stdhttp.StatusUnauthorized, rec.Code)
}

func TestRouter_MutationsRequireSession(t *testing.T) {
	router := routerFixture()

	for _, tc := range []struct{ method, path string }{
		{"POST", "/post"},
		{"DELETE", "/post?id=1"},
		{"POST", "/react"},
		{"POST", "/user/follow"},
		{"PUT", "/user"},
	} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, stdhttp.StatusUnauthorized, rec.Code, tc.method+" "+tc.path)
	}
}

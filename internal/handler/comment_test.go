package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"mural/internal/service"
)

func TestCommentList_RequiresExactlyOneScope(t *testing.T) {
	h := NewCommentHandler(service.NewCommentService(nil, nil, nil, nil))

	cases := []struct {
		name  string
		query string
	}{
		{"neither", "/comment?page=0"},
		{"both", "/comment?postId=1&commentId=2"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.List(rec, httptest.NewRequest("GET", tc.query, nil))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCommentList_RejectsMalformedIDs(t *testing.T) {
	h := NewCommentHandler(service.NewCommentService(nil, nil, nil, nil))

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest("GET", "/comment?postId=abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.List(rec, httptest.NewRequest("GET", "/comment?commentId=abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

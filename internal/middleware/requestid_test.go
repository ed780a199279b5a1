package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func newRequestIDRouter() http.Handler {
	r := newErrorRenderingRouter()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(RequestIDKey))
	})
	return r
}

func TestRequestIDMiddleware_GeneratesUUIDWhenAbsent(t *testing.T) {
	w := httptest.NewRecorder()
	newRequestIDRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	id := w.Header().Get(RequestIDHeader)
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("X-Request-ID = %q, want a UUID: %v", id, err)
	}
	if w.Body.String() != id {
		t.Errorf("context request ID %q does not match header %q", w.Body.String(), id)
	}
}

func TestRequestIDMiddleware_PropagatesIncomingID(t *testing.T) {
	const upstreamID = "upstream-provided-request-id-001"

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, upstreamID)
	w := httptest.NewRecorder()
	newRequestIDRouter().ServeHTTP(w, req)

	if got := w.Header().Get(RequestIDHeader); got != upstreamID {
		t.Errorf("X-Request-ID = %q, want %q", got, upstreamID)
	}
}

func TestRequestIDMiddleware_DifferentIDsPerRequest(t *testing.T) {
	r := newRequestIDRouter()
	seen := make(map[string]struct{}, 10)
	for i := 0; i < 10; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		id := w.Header().Get(RequestIDHeader)
		if _, dup := seen[id]; dup {
			t.Errorf("duplicate request ID %q on iteration %d", id, i)
		}
		seen[id] = struct{}{}
	}
}

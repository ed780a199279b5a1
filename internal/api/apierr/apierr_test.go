package apierr

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestConstructors(t *testing.T) {
	cases := []struct {
		name     string
		err      *HTTPError
		code     int
		errorMsg string
	}{
		{"bad request", NewBadRequest("m", nil), http.StatusBadRequest, "Bad Request"},
		{"unauthorized", NewUnauthorized("m", nil), http.StatusUnauthorized, "Unauthorized"},
		{"forbidden", NewForbidden("m", nil), http.StatusForbidden, "Forbidden"},
		{"not found", NewNotFound("m", nil), http.StatusNotFound, "Not Found"},
		{"conflict", NewConflict("m", nil), http.StatusConflict, "Conflict"},
		{"too many", NewTooManyRequests("m", nil), http.StatusTooManyRequests, "Too Many Requests"},
		{"internal", NewInternal("m", nil), http.StatusInternalServerError, "Internal Server Error"},
		{"unavailable", NewServiceUnavailable("m", nil), http.StatusServiceUnavailable, "Service Unavailable"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.code, tc.err.Code)
			assert.Equal(t, tc.errorMsg, tc.err.ErrorMsg)
			assert.Equal(t, "m", tc.err.Message)
			assert.False(t, tc.err.Timestamp.IsZero())
		})
	}
}

func TestHTTPError_MarshalJSON(t *testing.T) {
	t.Run("with details", func(t *testing.T) {
		body, err := json.Marshal(NewNotFound("recipient not found", errors.New("no rows")))
		require.NoError(t, err)

		var got map[string]any
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, float64(404), got["code"])
		assert.Equal(t, "recipient not found", got["message"])
		assert.Equal(t, "Not Found", got["error"])
		assert.Equal(t, "no rows", got["details"])
		assert.Contains(t, got, "timestamp")
	})

	t.Run("details omitted when nil", func(t *testing.T) {
		body, err := json.Marshal(NewBadRequest("bad id", nil))
		require.NoError(t, err)
		assert.NotContains(t, string(body), "details")
	})
}

func TestHTTPError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewInternal("failed", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, "http error 400: bad", NewBadRequest("bad", nil).Error())
}

func newTestRouter(logs *bytes.Buffer, handler gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(Middleware(slog.New(slog.NewTextHandler(logs, nil))))
	r.GET("/", handler)
	return r
}

func TestMiddleware_RendersHTTPError(t *testing.T) {
	var logs bytes.Buffer
	r := newTestRouter(&logs, func(c *gin.Context) {
		_ = c.Error(NewNotFound("recipient not found", nil))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "recipient not found", got["message"])
	assert.Contains(t, logs.String(), "recipient not found")
}

func TestMiddleware_PlainErrorBecomes500(t *testing.T) {
	var logs bytes.Buffer
	r := newTestRouter(&logs, func(c *gin.Context) {
		_ = c.Error(errors.New("boom"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "boom")
	assert.Contains(t, logs.String(), "level=ERROR")
}

func TestMiddleware_FirstErrorWins(t *testing.T) {
	var logs bytes.Buffer
	r := newTestRouter(&logs, func(c *gin.Context) {
		_ = c.Error(NewBadRequest("first", nil))
		_ = c.Error(NewInternal("second", nil))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "first")
	assert.NotContains(t, w.Body.String(), "second")
	assert.Contains(t, logs.String(), "second")
}

func TestMiddleware_DoesNotOverwriteResponse(t *testing.T) {
	var logs bytes.Buffer
	r := newTestRouter(&logs, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
		_ = c.Error(errors.New("late failure"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
}

func TestAbort_StopsChain(t *testing.T) {
	var logs bytes.Buffer
	r := gin.New()
	r.Use(Middleware(slog.New(slog.NewTextHandler(&logs, nil))))
	r.Use(func(c *gin.Context) { Abort(c, NewUnauthorized("missing key", nil)) })
	reached := false
	r.GET("/", func(c *gin.Context) { reached = true })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, reached)
}

package apierr

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Middleware renders the first error attached to the gin context. An
// *HTTPError is written with its own status; any other error becomes a 500.
// Every attached error is logged. Nothing is written if a response has
// already been sent.
func Middleware(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(c *gin.Context) {
		c.Next()

		written := c.Writer.Written()
		for _, ginErr := range c.Errors {
			var httpErr *HTTPError
			if !errors.As(ginErr.Err, &httpErr) {
				httpErr = NewInternal(ginErr.Err.Error(), nil)
			}

			level := slog.LevelWarn
			if httpErr.Code >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.Log(c.Request.Context(), level, httpErr.Message,
				"code", httpErr.Code,
				"path", c.Request.URL.Path,
				"error", httpErr.Details,
			)

			if !written {
				c.JSON(httpErr.Code, httpErr)
				written = true
			}
		}
	}
}

// Abort attaches err to c and stops the handler chain.
func Abort(c *gin.Context, err *HTTPError) {
	_ = c.Error(err)
	c.Abort()
}

package middleware

import (
	"io"
	"log/slog"

	"github.com/chariot-giving/agapay/internal/api/apierr"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newErrorRenderingRouter returns an engine that renders apierr responses, as
// the production router does, so aborting middleware produce real status codes.
func newErrorRenderingRouter() *gin.Engine {
	r := gin.New()
	r.Use(apierr.Middleware(slog.New(slog.NewTextHandler(io.Discard, nil))))
	return r
}

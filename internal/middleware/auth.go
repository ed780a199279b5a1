// Package middleware provides the Gin middleware shared by the agapay API:
// request IDs, metrics, request logging, security headers, rate limiting, and
// API key authentication.
//
// Ordering is fixed in internal/api/router.go:
//
//	Recovery → RequestID → Metrics → Logger → SecurityHeaders → apierr → (/v1: APIKeyAuth → RateLimit) → Handler
//
// Failures are attached with apierr so every error body has the same shape.
package middleware

import (
	"crypto/sha256"
	"sync"

	"github.com/chariot-giving/agapay/internal/api/apierr"
	"github.com/chariot-giving/agapay/internal/auth"
	"github.com/gin-gonic/gin"
)

const (
	// AuthMethodKey holds how the request was authenticated.
	AuthMethodKey = "auth_method"
	// APIKeyPrefixKey holds the display prefix of the presented API key.
	APIKeyPrefixKey = "api_key_prefix"
)

// APIKeyAuthMiddleware accepts requests whose bearer key matches keyHash, a
// bcrypt hash. With an empty keyHash every request is refused with 503, so an
// unconfigured deployment never serves data.
//
// A key that has verified once is remembered by its SHA-256 digest so the
// bcrypt comparison runs once per key rather than once per request.
func APIKeyAuthMiddleware(keyHash string) gin.HandlerFunc {
	var verified sync.Map // [sha256.Size]byte -> struct{}

	return func(c *gin.Context) {
		if keyHash == "" {
			apierr.Abort(c, apierr.NewServiceUnavailable("API authentication is not configured", nil))
			return
		}

		key, err := auth.ExtractAPIKeyFromHeader(c.GetHeader("Authorization"))
		if err != nil {
			apierr.Abort(c, apierr.NewUnauthorized("invalid authorization header", err))
			return
		}

		digest := sha256.Sum256([]byte(key))
		if _, ok := verified.Load(digest); !ok {
			if !auth.ValidateAPIKey(key, keyHash) {
				apierr.Abort(c, apierr.NewUnauthorized("invalid API key", nil))
				return
			}
			verified.Store(digest, struct{}{})
		}

		c.Set(AuthMethodKey, "api_key")
		c.Set(APIKeyPrefixKey, auth.DisplayPrefix(key))
		c.Next()
	}
}

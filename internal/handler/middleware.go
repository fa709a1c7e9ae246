package handler

import (
	"net/http"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agoranews/comment-gateway/internal/model"
)

const (
	bearerTokenKey = "bearer_token"
	requestIDKey   = "request_id"
)

// BearerMiddleware pulls the Authorization bearer into the context. The
// token is optional here — anonymous thread reads are allowed — mutating
// actions reject missing tokens in the service layer.
//
// When an OIDC verifier is configured, a present token is verified against
// the external auth provider; failures answer 401 at the edge so the remote
// comment API never sees the bad bearer.
func BearerMiddleware(verifier *oidc.IDTokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.Next()
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if token == "" {
			c.Next()
			return
		}

		if verifier != nil {
			if _, err := verifier.Verify(c.Request.Context(), token); err != nil {
				c.JSON(http.StatusUnauthorized, model.ErrorResponse{Error: "session expired"})
				c.Abort()
				return
			}
		}

		c.Set(bearerTokenKey, token)
		c.Next()
	}
}

// BearerToken returns the caller's bearer, or "" for anonymous requests.
func BearerToken(c *gin.Context) string {
	if value, ok := c.Get(bearerTokenKey); ok {
		if token, ok := value.(string); ok {
			return token
		}
	}
	return ""
}

// RequestIDMiddleware tags every request with an id for log correlation,
// honoring an id supplied by the caller.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// RequestID returns the id assigned by RequestIDMiddleware.
func RequestID(c *gin.Context) string {
	if value, ok := c.Get(requestIDKey); ok {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}

func CORSMiddleware(allowedOrigins []string, allowCredentials bool) gin.HandlerFunc {
	originMap := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}
		originMap[trimmed] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if _, ok := originMap[origin]; ok {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
				if allowCredentials {
					c.Header("Access-Control-Allow-Credentials", "true")
				}
				c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
				c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

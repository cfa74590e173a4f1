package middleware

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type AuthHandler interface {
	AuthMiddleware() gin.HandlerFunc
}

type authHandler struct {
	apiToken string
}

// NewAuthHandler refuses an empty token so the service fails closed instead
// of accepting every request.
func NewAuthHandler(apiToken string) (AuthHandler, error) {
	if apiToken == "" {
		return nil, fmt.Errorf("auth token must not be empty")
	}
	return &authHandler{apiToken: apiToken}, nil
}

func (h *authHandler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/health" {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "authorization header is required"})
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		if token == header || subtle.ConstantTimeCompare([]byte(token), []byte(h.apiToken)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "invalid authentication token"})
			return
		}

		c.Next()
	}
}

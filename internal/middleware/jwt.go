package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/2706msjk-ui/gilmo/internal/auth"
	"github.com/2706msjk-ui/gilmo/pkg/response"
)

// ContextUsername is the key for the authenticated admin username in gin context.
const ContextUsername = "username"

// JWT returns a middleware that validates the admin JWT and sets the username in context.
func JWT(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization header")
			c.Abort()
			return
		}
		claims, err := jwtService.Validate(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}
		c.Set(ContextUsername, claims.Username)
		c.Next()
	}
}

package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"gestock/internal/core/apperror"
	"gestock/internal/core/scope"
)

// TokenValidator validates an access token and resolves the caller's
// data-visibility scope.
type TokenValidator interface {
	ValidateToken(tokenString string) (scope.UserScope, error)
}

// Auth middleware validates JWT tokens and installs the user scope into
// the request context. Every route behind it can rely on
// scope.MustFromContext succeeding.
func Auth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			abortUnauthorized(c, "invalid authorization header format")
			return
		}

		sc, err := validator.ValidateToken(parts[1])
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}

		ctx := scope.WithScope(c.Request.Context(), sc)
		c.Request = c.Request.WithContext(ctx)

		c.Set("user_id", sc.UserID.String())
		c.Set("username", sc.Username)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	_ = c.Error(apperror.NewUnauthorized(message))
	c.Abort()
}

package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/douradinams/Douradinams/internal/models"
	appErrors "github.com/douradinams/Douradinams/pkg/errors"
	"github.com/douradinams/Douradinams/pkg/response"
)

// ContextUserKey is the gin context key storing the signed-in AuthUser.
const ContextUserKey = "currentUser"

type tokenValidator interface {
	ValidateToken(token string) (*models.JWTClaims, error)
}

// JWT protects routes by requiring a valid access token.
func JWT(auth tokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		token, ok := bearerToken(header)
		if !ok {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, claims.User())
		c.Next()
	}
}

// OptionalJWT attaches the user when a valid token is present but does not block.
func OptionalJWT(auth tokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Next()
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			c.Next()
			return
		}

		c.Set(ContextUserKey, claims.User())
		c.Next()
	}
}

// CurrentUser returns the signed-in user, or the unauthenticated zero value.
func CurrentUser(c *gin.Context) models.AuthUser {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return models.AuthUser{}
	}
	user, ok := value.(models.AuthUser)
	if !ok {
		return models.AuthUser{}
	}
	return user
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

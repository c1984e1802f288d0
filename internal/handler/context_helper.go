package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/douradinams/Douradinams/internal/middleware"
	"github.com/douradinams/Douradinams/internal/models"
	appErrors "github.com/douradinams/Douradinams/pkg/errors"
	"github.com/douradinams/Douradinams/pkg/response"
)

func userFromContext(c *gin.Context) models.AuthUser {
	return middleware.CurrentUser(c)
}

// bindJSON decodes the request body, answering 400 on failure.
func bindJSON(c *gin.Context, dst interface{}, msg string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, appErrors.ErrValidation.WithCause(err, msg))
		return false
	}
	return true
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/douradinams/Douradinams/internal/navigation"
	appErrors "github.com/douradinams/Douradinams/pkg/errors"
	"github.com/douradinams/Douradinams/pkg/response"
)

// NavigationRequest carries the client's current screen and the action taken.
type NavigationRequest struct {
	State     navigation.State  `json:"state"`
	Action    navigation.Action `json:"action" binding:"required"`
	StudentID string            `json:"studentId"`
}

// NavigationHandler answers screen transitions for the caller's role.
type NavigationHandler struct{}

// NewNavigationHandler constructs NavigationHandler.
func NewNavigationHandler() *NavigationHandler {
	return &NavigationHandler{}
}

// Next godoc
// @Summary Next screen
// @Description Applies an action to the current screen using the role from the bearer token
// @Tags Navigation
// @Accept json
// @Produce json
// @Param payload body NavigationRequest true "Current state and action"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /navigation [post]
func (h *NavigationHandler) Next(c *gin.Context) {
	var req NavigationRequest
	if !bindJSON(c, &req, "invalid navigation payload") {
		return
	}
	if req.State.Screen == "" {
		req.State = navigation.Initial()
	}

	result, err := navigation.Next(req.State, userFromContext(c), req.Action, req.StudentID)
	if err != nil {
		switch {
		case errors.Is(err, navigation.ErrForbidden):
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, err.Error()))
		default:
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		}
		return
	}
	response.JSON(c, http.StatusOK, result)
}

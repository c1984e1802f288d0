package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/douradinams/Douradinams/internal/models"
	appErrors "github.com/douradinams/Douradinams/pkg/errors"
	"github.com/douradinams/Douradinams/pkg/response"
)

type authService interface {
	LoginStudent(ctx context.Context, req models.StudentLoginRequest) (*models.LoginResponse, error)
	LoginStaff(ctx context.Context, req models.StaffLoginRequest) (*models.LoginResponse, error)
	LoginSupport(ctx context.Context, req models.SupportLoginRequest) (*models.LoginResponse, error)
}

// AuthHandler wires HTTP endpoints to the auth service.
type AuthHandler struct {
	service authService
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc authService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// LoginStudent godoc
// @Summary Student login
// @Description Authenticate a student or parent by CPF and birth date
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.StudentLoginRequest true "Login payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /auth/login/student [post]
func (h *AuthHandler) LoginStudent(c *gin.Context) {
	var req models.StudentLoginRequest
	if !bindJSON(c, &req, "invalid login payload") {
		return
	}
	res, err := h.service.LoginStudent(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

// LoginStaff godoc
// @Summary Staff login
// @Description Authenticate a driver or administrator by CPF
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.StaffLoginRequest true "Login payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /auth/login/staff [post]
func (h *AuthHandler) LoginStaff(c *gin.Context) {
	var req models.StaffLoginRequest
	if !bindJSON(c, &req, "invalid login payload") {
		return
	}
	res, err := h.service.LoginStaff(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

// LoginSupport godoc
// @Summary Support login
// @Description Authenticate the support tier with the shared secret
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.SupportLoginRequest true "Login payload"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/login/support [post]
func (h *AuthHandler) LoginSupport(c *gin.Context) {
	var req models.SupportLoginRequest
	if !bindJSON(c, &req, "invalid login payload") {
		return
	}
	res, err := h.service.LoginSupport(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

// Me godoc
// @Summary Get current user
// @Description Returns the authenticated user's info
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user := userFromContext(c)
	if !user.Authenticated() {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	response.JSON(c, http.StatusOK, user)
}

package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/douradinams/Douradinams/internal/models"
	"github.com/douradinams/Douradinams/pkg/response"
)

type settingsService interface {
	Get(ctx context.Context) (*models.AppSettings, error)
	Update(ctx context.Context, req models.UpdateSettingsRequest) (*models.AppSettings, error)
	Welcome(ctx context.Context) (*models.WelcomeBanner, error)
}

// SettingsHandler exposes the settings singleton.
type SettingsHandler struct {
	service settingsService
}

// NewSettingsHandler constructs SettingsHandler.
func NewSettingsHandler(svc settingsService) *SettingsHandler {
	return &SettingsHandler{service: svc}
}

// Welcome godoc
// @Summary Login banner
// @Tags Settings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /settings/welcome [get]
func (h *SettingsHandler) Welcome(c *gin.Context) {
	banner, err := h.service.Welcome(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, banner)
}

// Get godoc
// @Summary Get settings
// @Tags Settings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.service.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, settings)
}

// Update godoc
// @Summary Save settings
// @Tags Settings
// @Accept json
// @Produce json
// @Param payload body models.UpdateSettingsRequest true "Settings"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /settings [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	var req models.UpdateSettingsRequest
	if !bindJSON(c, &req, "invalid settings payload") {
		return
	}
	settings, err := h.service.Update(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, settings)
}

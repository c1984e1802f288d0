package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/douradinams/Douradinams/internal/models"
	"github.com/douradinams/Douradinams/internal/service"
	"github.com/douradinams/Douradinams/pkg/response"
)

type schoolService interface {
	List(ctx context.Context) ([]models.School, error)
	Create(ctx context.Context, req models.CreateSchoolRequest) (*models.School, error)
	Delete(ctx context.Context, id string) (*service.SchoolDeletion, error)
}

// SchoolHandler exposes the school list.
type SchoolHandler struct {
	service schoolService
}

// NewSchoolHandler constructs SchoolHandler.
func NewSchoolHandler(svc schoolService) *SchoolHandler {
	return &SchoolHandler{service: svc}
}

// List godoc
// @Summary List schools
// @Tags Schools
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /schools [get]
func (h *SchoolHandler) List(c *gin.Context) {
	schools, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schools)
}

// Create godoc
// @Summary Add school
// @Tags Schools
// @Accept json
// @Produce json
// @Param payload body models.CreateSchoolRequest true "School"
// @Success 201 {object} response.Envelope
// @Router /schools [post]
func (h *SchoolHandler) Create(c *gin.Context) {
	var req models.CreateSchoolRequest
	if !bindJSON(c, &req, "invalid school payload") {
		return
	}
	school, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, school)
}

// Delete godoc
// @Summary Delete school
// @Description Students referencing the school by name are left untouched and counted
// @Tags Schools
// @Produce json
// @Param id path string true "School ID"
// @Success 200 {object} response.Envelope
// @Router /schools/{id} [delete]
func (h *SchoolHandler) Delete(c *gin.Context) {
	result, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

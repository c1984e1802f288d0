package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/douradinams/Douradinams/internal/models"
	"github.com/douradinams/Douradinams/pkg/response"
)

type staffService interface {
	List(ctx context.Context) ([]models.StaffMember, error)
	Create(ctx context.Context, req models.CreateStaffRequest) (*models.StaffMember, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// StaffHandler exposes the staff roster.
type StaffHandler struct {
	service staffService
}

// NewStaffHandler constructs StaffHandler.
func NewStaffHandler(svc staffService) *StaffHandler {
	return &StaffHandler{service: svc}
}

// List godoc
// @Summary List staff
// @Tags Staff
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /staff [get]
func (h *StaffHandler) List(c *gin.Context) {
	staff, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, staff)
}

// Create godoc
// @Summary Add staff member
// @Tags Staff
// @Accept json
// @Produce json
// @Param payload body models.CreateStaffRequest true "Staff member"
// @Success 201 {object} response.Envelope
// @Router /staff [post]
func (h *StaffHandler) Create(c *gin.Context) {
	var req models.CreateStaffRequest
	if !bindJSON(c, &req, "invalid staff payload") {
		return
	}
	member, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, member)
}

// Delete godoc
// @Summary Remove staff member
// @Description Unknown ids are not an error
// @Tags Staff
// @Param id path string true "Staff ID"
// @Success 204
// @Router /staff/{id} [delete]
func (h *StaffHandler) Delete(c *gin.Context) {
	if _, err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

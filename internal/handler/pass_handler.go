package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/douradinams/Douradinams/internal/models"
	"github.com/douradinams/Douradinams/pkg/response"
)

type passService interface {
	PDF(ctx context.Context, studentID string) ([]byte, string, error)
	PlanShare(ctx context.Context, studentID string, req models.ShareRequest) (*models.SharePlan, error)
	ReportShare(ctx context.Context, studentID string, req models.ShareResultRequest) error
	Resolve(ctx context.Context, token string) (*models.PublicPass, error)
}

// PassHandler serves printable passes and share links.
type PassHandler struct {
	service passService
}

// NewPassHandler constructs PassHandler.
func NewPassHandler(svc passService) *PassHandler {
	return &PassHandler{service: svc}
}

// PDF godoc
// @Summary Printable pass
// @Tags Passes
// @Produce application/pdf
// @Param id path string true "Student ID"
// @Success 200 {file} file
// @Failure 404 {object} response.Envelope
// @Router /students/{id}/pass.pdf [get]
func (h *PassHandler) PDF(c *gin.Context) {
	body, filename, err := h.service.PDF(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, filename, "application/pdf", body)
}

// Share godoc
// @Summary Plan pass sharing
// @Description Returns the ordered share attempts (native, clipboard, unsupported) and a signed link
// @Tags Passes
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param payload body models.ShareRequest false "Client capabilities"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/share [post]
func (h *PassHandler) Share(c *gin.Context) {
	var req models.ShareRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req, "invalid share payload") {
		return
	}
	plan, err := h.service.PlanShare(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, plan)
}

// ShareResult godoc
// @Summary Report share outcome
// @Description Cancelled shares are a normal outcome
// @Tags Passes
// @Accept json
// @Param id path string true "Student ID"
// @Param payload body models.ShareResultRequest true "Outcome"
// @Success 204
// @Failure 400 {object} response.Envelope
// @Router /students/{id}/share/result [post]
func (h *PassHandler) ShareResult(c *gin.Context) {
	var req models.ShareResultRequest
	if !bindJSON(c, &req, "invalid share result") {
		return
	}
	if err := h.service.ReportShare(c.Request.Context(), c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Resolve godoc
// @Summary Public pass
// @Description Resolves a signed share link
// @Tags Passes
// @Produce json
// @Param token path string true "Share token"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /passes/{token} [get]
func (h *PassHandler) Resolve(c *gin.Context) {
	pass, err := h.service.Resolve(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, pass)
}

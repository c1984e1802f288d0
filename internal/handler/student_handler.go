package handler

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/douradinams/Douradinams/internal/models"
	"github.com/douradinams/Douradinams/internal/service"
	appErrors "github.com/douradinams/Douradinams/pkg/errors"
	"github.com/douradinams/Douradinams/pkg/response"
)

type studentService interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error)
	Get(ctx context.Context, id string) (*models.Student, error)
	Create(ctx context.Context, req models.CreateStudentRequest) (*models.Student, error)
	Update(ctx context.Context, id string, req models.UpdateStudentRequest) (*models.Student, error)
}

type rosterService interface {
	Export(ctx context.Context, format service.ExportFormat) (*service.ExportFile, error)
	Import(ctx context.Context, r io.Reader) (*models.ImportResult, error)
}

type photoService interface {
	Upload(ctx context.Context, studentID string, r io.Reader) (*models.Student, error)
	Open(ctx context.Context, studentID, file string) (io.ReadCloser, string, error)
}

// StudentHandler exposes student endpoints.
type StudentHandler struct {
	students studentService
	roster   rosterService
	photos   photoService
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(students studentService, roster rosterService, photos photoService) *StudentHandler {
	return &StudentHandler{students: students, roster: roster, photos: photos}
}

// List godoc
// @Summary List students
// @Tags Students
// @Produce json
// @Param search query string false "Search by name or registration number"
// @Success 200 {object} response.Envelope
// @Router /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	filter := models.StudentFilter{Search: strings.TrimSpace(c.Query("search"))}
	students, err := h.students.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students, map[string]interface{}{"total": len(students)})
}

// Get godoc
// @Summary Get student detail
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{id} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	student, err := h.students.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student)
}

// Create godoc
// @Summary Register student
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body models.CreateStudentRequest true "Student payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /students [post]
func (h *StudentHandler) Create(c *gin.Context) {
	var req models.CreateStudentRequest
	if !bindJSON(c, &req, "invalid payload") {
		return
	}
	student, err := h.students.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}

// Update godoc
// @Summary Update student
// @Description Merges the supplied fields; id and registration number never change
// @Tags Students
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param payload body models.UpdateStudentRequest true "Student payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{id} [put]
func (h *StudentHandler) Update(c *gin.Context) {
	var req models.UpdateStudentRequest
	if !bindJSON(c, &req, "invalid payload") {
		return
	}
	student, err := h.students.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student)
}

// Export godoc
// @Summary Export roster
// @Tags Students
// @Produce text/csv
// @Param format query string false "csv, xlsx or pdf" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /students/export [get]
func (h *StudentHandler) Export(c *gin.Context) {
	format := service.ExportFormat(strings.ToLower(c.DefaultQuery("format", string(service.ExportFormatCSV))))
	file, err := h.roster.Export(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}

// Import godoc
// @Summary Import roster spreadsheet
// @Tags Students
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "XLSX roster"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /students/import [post]
func (h *StudentHandler) Import(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.ErrValidation.WithCause(err, "file is required"))
		return
	}
	f, err := header.Open()
	if err != nil {
		response.Error(c, appErrors.ErrValidation.WithCause(err, "unable to read file"))
		return
	}
	defer f.Close()

	result, err := h.roster.Import(c.Request.Context(), f)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// UploadPhoto godoc
// @Summary Upload student photo
// @Description Stores the photo, links it to the student and marks them Active
// @Tags Students
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Student ID"
// @Param photo formData file true "JPEG, PNG or WebP image"
// @Success 200 {object} response.Envelope
// @Failure 413 {object} response.Envelope
// @Failure 415 {object} response.Envelope
// @Router /students/{id}/photo [post]
func (h *StudentHandler) UploadPhoto(c *gin.Context) {
	header, err := c.FormFile("photo")
	if err != nil {
		response.Error(c, appErrors.ErrValidation.WithCause(err, "photo is required"))
		return
	}
	f, err := header.Open()
	if err != nil {
		response.Error(c, appErrors.ErrValidation.WithCause(err, "unable to read photo"))
		return
	}
	defer f.Close()

	student, err := h.photos.Upload(c.Request.Context(), c.Param("id"), f)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student)
}

// Photo godoc
// @Summary Download student photo
// @Tags Students
// @Produce image/jpeg
// @Param id path string true "Student ID"
// @Param file path string true "Photo file name"
// @Success 200 {file} file
// @Failure 404 {object} response.Envelope
// @Router /students/{id}/photo/{file} [get]
func (h *StudentHandler) Photo(c *gin.Context) {
	rc, contentType, err := h.photos.Open(c.Request.Context(), c.Param("id"), c.Param("file"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer rc.Close()
	c.Header("Cache-Control", "private, max-age=3600")
	c.DataFromReader(http.StatusOK, -1, contentType, rc, nil)
}

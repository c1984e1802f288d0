package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/douradinams/Douradinams/internal/models"
	"github.com/douradinams/Douradinams/internal/repository"
	appErrors "github.com/douradinams/Douradinams/pkg/errors"
)

type studentRepository interface {
	Search(ctx context.Context, filter models.StudentFilter) ([]models.Student, error)
	Save(ctx context.Context, patch models.StudentPatch) (models.Student, error)
	GetByID(ctx context.Context, id string) (*models.Student, error)
}

type schoolLister interface {
	List(ctx context.Context) ([]models.School, error)
}

// StudentService handles student registration and lookup.
type StudentService struct {
	repo      studentRepository
	schools   schoolLister
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, schools schoolLister, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, schools: schools, validator: validate, logger: logger}
}

// List returns students matching the dashboard search in insertion order.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	students, err := s.repo.Search(ctx, filter)
	if err != nil {
		s.logger.Error("list students", zap.Error(err))
		return nil, appErrors.ErrInternal.WithCause(err, "failed to list students")
	}
	return students, nil
}

// Get returns a student by id.
func (s *StudentService) Get(ctx context.Context, id string) (*models.Student, error) {
	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, MsgStudentNotFound)
		}
		s.logger.Error("load student", zap.String("student_id", id), zap.Error(err))
		return nil, appErrors.ErrInternal.WithCause(err, "failed to load student")
	}
	return student, nil
}

// Create registers a student. Blank blood type, status and school fall back
// to the registration form defaults: "O+", Pending and the first school.
// A photo URL supplied on creation marks the student Active.
func (s *StudentService) Create(ctx context.Context, req models.CreateStudentRequest) (*models.Student, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.ErrValidation.WithCause(err, "invalid student payload")
	}

	if req.BloodType == "" {
		req.BloodType = models.DefaultBloodType
	}
	if req.Status == "" {
		req.Status = models.StudentStatusPending
	}
	if req.PhotoURL != "" {
		req.Status = models.StudentStatusActive
	}
	if req.School == "" {
		school, err := s.defaultSchool(ctx)
		if err != nil {
			return nil, err
		}
		req.School = school
	}

	student, err := s.repo.Save(ctx, createPatch(req))
	if err != nil {
		s.logger.Error("create student", zap.Error(err))
		return nil, appErrors.ErrInternal.WithCause(err, "failed to save student")
	}
	s.logger.Info("student registered", zap.String("student_id", student.ID), zap.String("registration", student.RegistrationNumber))
	return &student, nil
}

// Update merges the provided fields into an existing student.
func (s *StudentService) Update(ctx context.Context, id string, req models.UpdateStudentRequest) (*models.Student, error) {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "name must not be blank")
		}
		req.Name = &name
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.ErrValidation.WithCause(err, "invalid student payload")
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	patch := models.StudentPatch{
		ID:             id,
		Name:           req.Name,
		CPF:            req.CPF,
		BirthDate:      req.BirthDate,
		Parents:        req.Parents,
		Phone:          req.Phone,
		EmergencyPhone: req.EmergencyPhone,
		BloodType:      req.BloodType,
		SpecialNeeds:   req.SpecialNeeds,
		School:         req.School,
		PhotoURL:       req.PhotoURL,
		Status:         req.Status,
	}
	if req.PhotoURL != nil && *req.PhotoURL != "" {
		active := models.StudentStatusActive
		patch.Status = &active
	}

	student, err := s.repo.Save(ctx, patch)
	if err != nil {
		s.logger.Error("update student", zap.String("student_id", id), zap.Error(err))
		return nil, appErrors.ErrInternal.WithCause(err, "failed to save student")
	}
	return &student, nil
}

func (s *StudentService) defaultSchool(ctx context.Context) (string, error) {
	schools, err := s.schools.List(ctx)
	if err != nil {
		return "", appErrors.ErrInternal.WithCause(err, "failed to load schools")
	}
	if len(schools) == 0 {
		return "", nil
	}
	return schools[0].Name, nil
}

func createPatch(req models.CreateStudentRequest) models.StudentPatch {
	status := req.Status
	specialNeeds := req.SpecialNeeds
	return models.StudentPatch{
		Name:           &req.Name,
		CPF:            &req.CPF,
		BirthDate:      &req.BirthDate,
		Parents:        &req.Parents,
		Phone:          &req.Phone,
		EmergencyPhone: &req.EmergencyPhone,
		BloodType:      &req.BloodType,
		SpecialNeeds:   &specialNeeds,
		School:         &req.School,
		PhotoURL:       &req.PhotoURL,
		Status:         &status,
	}
}

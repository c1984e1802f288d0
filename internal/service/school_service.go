package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/douradinams/Douradinams/internal/models"
	appErrors "github.com/douradinams/Douradinams/pkg/errors"
)

type schoolRepository interface {
	List(ctx context.Context) ([]models.School, error)
	Add(ctx context.Context, name, address string) (models.School, error)
	Delete(ctx context.Context, id string) (*models.School, error)
}

type schoolUsageCounter interface {
	CountBySchool(ctx context.Context, name string) (int, error)
}

// SchoolDeletion reports what a delete did. Students keep their free-text
// school name; StudentsReferencing counts them.
type SchoolDeletion struct {
	Removed             bool `json:"removed"`
	StudentsReferencing int  `json:"studentsReferencing"`
}

// SchoolService manages the school list used by the registration form.
type SchoolService struct {
	repo      schoolRepository
	students  schoolUsageCounter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSchoolService constructs the school service.
func NewSchoolService(repo schoolRepository, students schoolUsageCounter, validate *validator.Validate, logger *zap.Logger) *SchoolService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SchoolService{repo: repo, students: students, validator: validate, logger: logger}
}

// List returns all schools, seeding defaults on first use.
func (s *SchoolService) List(ctx context.Context) ([]models.School, error) {
	schools, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("list schools", zap.Error(err))
		return nil, appErrors.ErrInternal.WithCause(err, "failed to list schools")
	}
	return schools, nil
}

// Create adds a school.
func (s *SchoolService) Create(ctx context.Context, req models.CreateSchoolRequest) (*models.School, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.ErrValidation.WithCause(err, "invalid school payload")
	}
	school, err := s.repo.Add(ctx, req.Name, req.Address)
	if err != nil {
		s.logger.Error("add school", zap.Error(err))
		return nil, appErrors.ErrInternal.WithCause(err, "failed to add school")
	}
	return &school, nil
}

// Delete removes a school. Unknown ids are not an error and students are
// never modified.
func (s *SchoolService) Delete(ctx context.Context, id string) (*SchoolDeletion, error) {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("delete school", zap.String("school_id", id), zap.Error(err))
		return nil, appErrors.ErrInternal.WithCause(err, "failed to delete school")
	}
	result := &SchoolDeletion{Removed: removed != nil}
	if removed == nil {
		return result, nil
	}

	count, err := s.students.CountBySchool(ctx, removed.Name)
	if err != nil {
		s.logger.Warn("count students for deleted school", zap.String("school", removed.Name), zap.Error(err))
		return result, nil
	}
	result.StudentsReferencing = count
	if count > 0 {
		s.logger.Warn("deleted school still referenced by students",
			zap.String("school", removed.Name),
			zap.Int("students", count),
		)
	}
	return result, nil
}

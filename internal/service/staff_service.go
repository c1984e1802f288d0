package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/douradinams/Douradinams/internal/models"
	appErrors "github.com/douradinams/Douradinams/pkg/errors"
)

type staffRepository interface {
	List(ctx context.Context) ([]models.StaffMember, error)
	Add(ctx context.Context, member models.StaffMember) (models.StaffMember, error)
	Delete(ctx context.Context, id string) (*models.StaffMember, error)
}

// StaffService manages the staff roster.
type StaffService struct {
	repo      staffRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStaffService constructs the staff service.
func NewStaffService(repo staffRepository, validate *validator.Validate, logger *zap.Logger) *StaffService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StaffService{repo: repo, validator: validate, logger: logger}
}

// List returns the roster.
func (s *StaffService) List(ctx context.Context) ([]models.StaffMember, error) {
	staff, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("list staff", zap.Error(err))
		return nil, appErrors.ErrInternal.WithCause(err, "failed to list staff")
	}
	return staff, nil
}

// Create adds a staff member. Duplicate CPFs are accepted; login uses the first.
func (s *StaffService) Create(ctx context.Context, req models.CreateStaffRequest) (*models.StaffMember, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.ErrValidation.WithCause(err, "invalid staff payload")
	}
	member, err := s.repo.Add(ctx, models.StaffMember{Name: req.Name, CPF: req.CPF, Role: req.Role})
	if err != nil {
		s.logger.Error("add staff", zap.Error(err))
		return nil, appErrors.ErrInternal.WithCause(err, "failed to add staff member")
	}
	return &member, nil
}

// Delete removes a member; it reports whether anything was removed.
func (s *StaffService) Delete(ctx context.Context, id string) (bool, error) {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("delete staff", zap.String("staff_id", id), zap.Error(err))
		return false, appErrors.ErrInternal.WithCause(err, "failed to delete staff member")
	}
	return removed != nil, nil
}

package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/douradinams/Douradinams/internal/models"
	appErrors "github.com/douradinams/Douradinams/pkg/errors"
)

type settingsRepository interface {
	Get(ctx context.Context) (models.AppSettings, error)
	Save(ctx context.Context, settings models.AppSettings) error
}

// SettingsService exposes the settings singleton and the login banner.
type SettingsService struct {
	repo         settingsRepository
	validator    *validator.Validate
	logger       *zap.Logger
	dismissAfter time.Duration
}

// NewSettingsService constructs the settings service.
func NewSettingsService(repo settingsRepository, validate *validator.Validate, logger *zap.Logger, dismissAfter time.Duration) *SettingsService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if dismissAfter <= 0 {
		dismissAfter = 4 * time.Second
	}
	return &SettingsService{repo: repo, validator: validate, logger: logger, dismissAfter: dismissAfter}
}

// Get returns the current settings.
func (s *SettingsService) Get(ctx context.Context) (*models.AppSettings, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		s.logger.Error("load settings", zap.Error(err))
		return nil, appErrors.ErrInternal.WithCause(err, "failed to load settings")
	}
	return &settings, nil
}

// Update overwrites the settings.
func (s *SettingsService) Update(ctx context.Context, req models.UpdateSettingsRequest) (*models.AppSettings, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.ErrValidation.WithCause(err, "invalid settings payload")
	}
	settings := models.AppSettings{WelcomeMessage: req.WelcomeMessage}
	if err := s.repo.Save(ctx, settings); err != nil {
		s.logger.Error("save settings", zap.Error(err))
		return nil, appErrors.ErrInternal.WithCause(err, "failed to save settings")
	}
	return &settings, nil
}

// Welcome returns the login banner with its auto-dismiss delay.
func (s *SettingsService) Welcome(ctx context.Context) (*models.WelcomeBanner, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &models.WelcomeBanner{
		Message:        settings.WelcomeMessage,
		DismissAfterMs: s.dismissAfter.Milliseconds(),
	}, nil
}

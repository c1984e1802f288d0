package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/douradinams/Douradinams/internal/models"
	appErrors "github.com/douradinams/Douradinams/pkg/errors"
	"github.com/douradinams/Douradinams/pkg/export"
	"github.com/douradinams/Douradinams/pkg/storage"
)

// Share sheet copy shown to the user.
const (
	ShareCopiedMessage      = "Link da carteirinha copiado para a área de transferência!"
	ShareUnsupportedMessage = "O compartilhamento nativo não é suportado neste navegador. Tente baixar o PDF."
)

const unnamedStudent = "Estudante sem nome"

type passStudentRepository interface {
	GetByID(ctx context.Context, id string) (*models.Student, error)
}

type passRenderer interface {
	RenderPassCard(card export.PassCard) ([]byte, error)
}

type photoLoader interface {
	Load(ctx context.Context, student models.Student) ([]byte, string, bool)
}

type shareSigner interface {
	Generate(subject string) (string, time.Time, error)
	Parse(token string) (string, time.Time, error)
}

type shareMetrics interface {
	RecordShareOutcome(method, outcome string)
}

// PassConfig tunes pass links.
type PassConfig struct {
	PublicBaseURL string
	APIPrefix     string
}

// PassService renders printable passes and plans pass sharing.
type PassService struct {
	students  passStudentRepository
	photos    photoLoader
	renderer  passRenderer
	signer    shareSigner
	metrics   shareMetrics
	validator *validator.Validate
	logger    *zap.Logger
	cfg       PassConfig
}

// NewPassService constructs a PassService. photos and metrics may be nil.
func NewPassService(students passStudentRepository, photos photoLoader, renderer passRenderer, signer shareSigner, metrics shareMetrics, logger *zap.Logger, cfg PassConfig) *PassService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if renderer == nil {
		renderer = export.NewPDFExporter()
	}
	cfg.PublicBaseURL = strings.TrimRight(cfg.PublicBaseURL, "/")
	cfg.APIPrefix = strings.TrimRight(cfg.APIPrefix, "/")
	return &PassService{
		students:  students,
		photos:    photos,
		renderer:  renderer,
		signer:    signer,
		metrics:   metrics,
		validator: validator.New(),
		logger:    logger,
		cfg:       cfg,
	}
}

// PDF renders the printable pass for a student.
func (s *PassService) PDF(ctx context.Context, studentID string) ([]byte, string, error) {
	student, err := s.loadStudent(ctx, studentID)
	if err != nil {
		return nil, "", err
	}

	card := export.PassCard{
		Title:              "Carteirinha Escolar",
		Name:               cardName(student.Name),
		RegistrationNumber: student.RegistrationNumber,
		School:             student.School,
		BirthDate:          student.BirthDate,
		BloodType:          student.BloodType,
		Status:             string(student.Status),
		Parents:            student.Parents,
		EmergencyPhone:     student.EmergencyPhone,
		SpecialNeeds:       student.SpecialNeeds,
	}
	if link, _, err := s.link(student.ID); err == nil {
		card.VerifyURL = link
	} else {
		s.logger.Warn("sign pass link", zap.String("student_id", student.ID), zap.Error(err))
	}
	if s.photos != nil {
		if data, contentType, ok := s.photos.Load(ctx, *student); ok {
			card.Photo = data
			card.PhotoType = pdfImageType(contentType)
		}
	}

	body, err := s.renderer.RenderPassCard(card)
	if err != nil {
		s.logger.Error("render pass", zap.String("student_id", student.ID), zap.Error(err))
		return nil, "", appErrors.ErrInternal.WithCause(err, "failed to render pass")
	}
	return body, fmt.Sprintf("carteirinha-%s.pdf", student.RegistrationNumber), nil
}

// PlanShare returns the ordered share attempts for the client: native share,
// then clipboard, then the unsupported notice. A URL is attached only when it
// is absolute http(s); when native share is tried with a URL, a retry without
// it follows.
func (s *PassService) PlanShare(ctx context.Context, studentID string, req models.ShareRequest) (*models.SharePlan, error) {
	student, err := s.loadStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	plan := &models.SharePlan{
		Attempts: []models.ShareAttempt{},
		Copied:   ShareCopiedMessage,
		Fallback: ShareUnsupportedMessage,
	}

	link, expires, err := s.link(student.ID)
	if err != nil {
		s.logger.Warn("sign share link", zap.String("student_id", student.ID), zap.Error(err))
	} else {
		plan.LinkURL = link
		plan.LinkExpires = expires
	}

	shareURL := ""
	switch {
	case isHTTPURL(plan.LinkURL):
		shareURL = plan.LinkURL
	case isHTTPURL(req.PageURL):
		shareURL = req.PageURL
	}

	base := models.SharePayload{
		Title: "Carteirinha Escolar - " + student.Name,
		Text:  fmt.Sprintf("Confira a carteirinha de transporte escolar de %s.", student.Name),
	}

	if req.Capabilities.NativeShare {
		withURL := base
		withURL.URL = shareURL
		plan.Attempts = append(plan.Attempts, models.ShareAttempt{Method: models.ShareMethodNative, Payload: withURL})
		if shareURL != "" {
			plan.Attempts = append(plan.Attempts, models.ShareAttempt{Method: models.ShareMethodNative, Payload: base})
		}
	}
	if req.Capabilities.Clipboard {
		clip := base
		clip.URL = shareURL
		if shareURL != "" {
			clip.Text = shareURL
		}
		plan.Attempts = append(plan.Attempts, models.ShareAttempt{Method: models.ShareMethodClipboard, Payload: clip})
	}
	plan.Attempts = append(plan.Attempts, models.ShareAttempt{Method: models.ShareMethodUnsupported, Payload: models.SharePayload{Text: ShareUnsupportedMessage}})

	return plan, nil
}

// ReportShare records how the client's share attempt ended. Cancellation is a
// normal outcome; only failures are logged as warnings.
func (s *PassService) ReportShare(_ context.Context, studentID string, req models.ShareResultRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.ErrValidation.WithCause(err, "invalid share result")
	}
	if s.metrics != nil {
		s.metrics.RecordShareOutcome(string(req.Method), string(req.Outcome))
	}
	fields := []zap.Field{
		zap.String("student_id", studentID),
		zap.String("method", string(req.Method)),
		zap.String("outcome", string(req.Outcome)),
	}
	switch req.Outcome {
	case models.ShareOutcomeFailed:
		s.logger.Warn("pass share failed", append(fields, zap.String("error", req.Error))...)
	case models.ShareOutcomeCancelled, models.ShareOutcomeShared, models.ShareOutcomeCopied:
		s.logger.Debug("pass share finished", fields...)
	}
	return nil
}

// Resolve returns the public pass behind a share token.
func (s *PassService) Resolve(ctx context.Context, token string) (*models.PublicPass, error) {
	studentID, expires, err := s.signer.Parse(token)
	if err != nil {
		if errors.Is(err, storage.ErrTokenExpired) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "share link expired")
		}
		return nil, appErrors.Clone(appErrors.ErrNotFound, "share link not found")
	}
	student, err := s.loadStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return &models.PublicPass{
		Name:               student.Name,
		School:             student.School,
		RegistrationNumber: student.RegistrationNumber,
		BloodType:          student.BloodType,
		SpecialNeeds:       student.SpecialNeeds,
		Status:             student.Status,
		ExpiresAt:          expires,
	}, nil
}

func (s *PassService) link(studentID string) (string, time.Time, error) {
	if s.signer == nil {
		return "", time.Time{}, fmt.Errorf("share signer not configured")
	}
	token, expires, err := s.signer.Generate(studentID)
	if err != nil {
		return "", time.Time{}, err
	}
	return fmt.Sprintf("%s%s/passes/%s", s.cfg.PublicBaseURL, s.cfg.APIPrefix, token), expires, nil
}

func (s *PassService) loadStudent(ctx context.Context, id string) (*models.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, MsgStudentNotFound)
		}
		s.logger.Error("load student", zap.String("student_id", id), zap.Error(err))
		return nil, appErrors.ErrInternal.WithCause(err, "failed to load student")
	}
	return student, nil
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

func pdfImageType(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return "JPG"
	case "image/png":
		return "PNG"
	default:
		return ""
	}
}

// cardName keeps passes printable for records saved without a name.
func cardName(name string) string {
	if strings.TrimSpace(name) == "" {
		return unnamedStudent
	}
	return name
}

package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/douradinams/Douradinams/internal/models"
	"github.com/douradinams/Douradinams/internal/repository"
	appErrors "github.com/douradinams/Douradinams/pkg/errors"
)

// Login failure messages shown to the user verbatim.
const (
	MsgStudentNotFound    = "Estudante não encontrado. Verifique os dados."
	MsgStaffNotFound      = "Membro da equipe não encontrado."
	MsgInvalidSupportCred = "Credenciais de suporte inválidas."
)

// SupportDisplayName is the name carried by support sessions.
const SupportDisplayName = "Suporte Técnico"

type authStudentRepository interface {
	GetByCPFAndBirth(ctx context.Context, cpf, birthDate string) (*models.Student, error)
}

type authStaffRepository interface {
	GetByCPF(ctx context.Context, cpf string) (*models.StaffMember, error)
}

type loginMetrics interface {
	RecordLogin(role string, success bool)
}

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	AccessTokenSecret string
	AccessTokenExpiry time.Duration
	Issuer            string
	// SupportSecret is compared in constant time unless SupportSecretHash,
	// a bcrypt hash, is set.
	SupportSecret     string
	SupportSecretHash string
}

// AuthService issues and validates session tokens for the three login paths.
type AuthService struct {
	students  authStudentRepository
	staff     authStaffRepository
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
	metrics   loginMetrics
	now       func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(students authStudentRepository, staff authStaffRepository, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if config.AccessTokenExpiry <= 0 {
		config.AccessTokenExpiry = 12 * time.Hour
	}
	return &AuthService{
		students:  students,
		staff:     staff,
		validator: validate,
		logger:    logger,
		config:    config,
		now:       time.Now,
	}
}

// WithMetrics attaches a login counter.
func (s *AuthService) WithMetrics(m loginMetrics) *AuthService {
	s.metrics = m
	return s
}

// LoginStudent matches cpf and birth date exactly against the roster.
func (s *AuthService) LoginStudent(ctx context.Context, req models.StudentLoginRequest) (resp *models.LoginResponse, err error) {
	defer func() { s.record(models.RoleStudent, err) }()
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.ErrValidation.WithCause(err, "invalid login payload")
	}

	student, err := s.students.GetByCPFAndBirth(ctx, req.CPF, req.BirthDate)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, MsgStudentNotFound)
		}
		return nil, appErrors.ErrInternal.WithCause(err, "failed to look up student")
	}

	return s.issue(models.AuthUser{Role: models.RoleStudent, ID: student.ID, Name: student.Name})
}

// LoginStaff matches the cpf exactly; the first staff member wins.
func (s *AuthService) LoginStaff(ctx context.Context, req models.StaffLoginRequest) (resp *models.LoginResponse, err error) {
	defer func() { s.record(models.RoleStaff, err) }()
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.ErrValidation.WithCause(err, "invalid login payload")
	}

	member, err := s.staff.GetByCPF(ctx, req.CPF)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, MsgStaffNotFound)
		}
		return nil, appErrors.ErrInternal.WithCause(err, "failed to look up staff member")
	}

	return s.issue(models.AuthUser{Role: models.RoleStaff, ID: member.ID, Name: member.Name})
}

// LoginSupport checks the shared support secret.
func (s *AuthService) LoginSupport(_ context.Context, req models.SupportLoginRequest) (resp *models.LoginResponse, err error) {
	defer func() { s.record(models.RoleSupport, err) }()
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.ErrValidation.WithCause(err, "invalid login payload")
	}
	if !s.supportSecretMatches(req.Secret) {
		s.logger.Warn("support login rejected")
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, MsgInvalidSupportCred)
	}
	return s.issue(models.AuthUser{Role: models.RoleSupport, Name: SupportDisplayName})
}

func (s *AuthService) record(role models.Role, err error) {
	if s.metrics != nil {
		s.metrics.RecordLogin(string(role), err == nil)
	}
}

func (s *AuthService) supportSecretMatches(secret string) bool {
	if s.config.SupportSecretHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.config.SupportSecretHash), []byte(secret)) == nil
	}
	if s.config.SupportSecret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(s.config.SupportSecret), []byte(secret)) == 1
}

// ValidateToken parses and validates an access token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.AccessTokenSecret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, appErrors.ErrUnauthorized.WithCause(err, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid || !claims.Role.Valid() {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}

	return claims, nil
}

func (s *AuthService) issue(user models.AuthUser) (*models.LoginResponse, error) {
	issuedAt := s.now().UTC()
	expiresAt := issuedAt.Add(s.config.AccessTokenExpiry)
	claims := &models.JWTClaims{
		Role: user.Role,
		Name: user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.config.Issuer,
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.AccessTokenSecret))
	if err != nil {
		return nil, appErrors.ErrInternal.WithCause(err, "failed to create access token")
	}

	s.logger.Info("session issued", zap.String("role", string(user.Role)), zap.String("user_id", user.ID))

	return &models.LoginResponse{
		AccessToken: signed,
		ExpiresIn:   int64(s.config.AccessTokenExpiry.Seconds()),
		User:        user,
		IssuedAt:    issuedAt,
	}, nil
}

package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/douradinams/Douradinams/internal/models"
	appErrors "github.com/douradinams/Douradinams/pkg/errors"
	"github.com/douradinams/Douradinams/pkg/storage"
)

type fakeSigner struct {
	token     string
	subject   string
	expiresAt time.Time
	genErr    error
	parseErr  error
}

func (f *fakeSigner) Generate(subject string) (string, time.Time, error) {
	if f.genErr != nil {
		return "", time.Time{}, f.genErr
	}
	return f.token, f.expiresAt, nil
}

func (f *fakeSigner) Parse(token string) (string, time.Time, error) {
	if f.parseErr != nil {
		return "", time.Time{}, f.parseErr
	}
	return f.subject, f.expiresAt, nil
}

type shareRecorder struct {
	outcomes []string
}

func (r *shareRecorder) RecordShareOutcome(method, outcome string) {
	r.outcomes = append(r.outcomes, method+":"+outcome)
}

func anaRepo() *mockStudentRepo {
	return &mockStudentRepo{items: []models.Student{{
		ID:                 "abc",
		Name:               "Ana Silva",
		School:             "Colégio Integração",
		RegistrationNumber: "2026-123",
		BloodType:          "O+",
		Status:             models.StudentStatusActive,
	}}}
}

func TestPlanShareWithSignedLink(t *testing.T) {
	signer := &fakeSigner{token: "tok", expiresAt: time.Unix(1700000000, 0)}
	svc := NewPassService(anaRepo(), nil, nil, signer, nil, nil, PassConfig{PublicBaseURL: "https://pass.example.com/", APIPrefix: "/api/v1"})

	plan, err := svc.PlanShare(context.Background(), "abc", models.ShareRequest{
		PageURL:      "https://app.example.com/students/abc",
		Capabilities: models.ShareCapabilities{NativeShare: true, Clipboard: true},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://pass.example.com/api/v1/passes/tok", plan.LinkURL)
	require.Len(t, plan.Attempts, 4)

	assert.Equal(t, models.ShareMethodNative, plan.Attempts[0].Method)
	assert.Equal(t, plan.LinkURL, plan.Attempts[0].Payload.URL)
	assert.Equal(t, "Carteirinha Escolar - Ana Silva", plan.Attempts[0].Payload.Title)

	assert.Equal(t, models.ShareMethodNative, plan.Attempts[1].Method)
	assert.Empty(t, plan.Attempts[1].Payload.URL)

	assert.Equal(t, models.ShareMethodClipboard, plan.Attempts[2].Method)
	assert.Equal(t, plan.LinkURL, plan.Attempts[2].Payload.Text)

	assert.Equal(t, models.ShareMethodUnsupported, plan.Attempts[3].Method)
	assert.Equal(t, ShareUnsupportedMessage, plan.Fallback)
	assert.Equal(t, ShareCopiedMessage, plan.Copied)
}

func TestPlanShareFallsBackToPageURL(t *testing.T) {
	signer := &fakeSigner{genErr: errBoom}
	svc := NewPassService(anaRepo(), nil, nil, signer, nil, nil, PassConfig{})

	plan, err := svc.PlanShare(context.Background(), "abc", models.ShareRequest{
		PageURL:      "https://app.example.com/students/abc",
		Capabilities: models.ShareCapabilities{NativeShare: true},
	})
	require.NoError(t, err)
	assert.Empty(t, plan.LinkURL)
	require.Len(t, plan.Attempts, 3)
	assert.Equal(t, "https://app.example.com/students/abc", plan.Attempts[0].Payload.URL)
}

func TestPlanShareOmitsNonHTTPURL(t *testing.T) {
	signer := &fakeSigner{genErr: errBoom}
	svc := NewPassService(anaRepo(), nil, nil, signer, nil, nil, PassConfig{})

	plan, err := svc.PlanShare(context.Background(), "abc", models.ShareRequest{
		PageURL:      "file:///tmp/pass.html",
		Capabilities: models.ShareCapabilities{NativeShare: true},
	})
	require.NoError(t, err)
	require.Len(t, plan.Attempts, 2)
	assert.Empty(t, plan.Attempts[0].Payload.URL)
	assert.Equal(t, models.ShareMethodUnsupported, plan.Attempts[1].Method)

	plan, err = svc.PlanShare(context.Background(), "abc", models.ShareRequest{})
	require.NoError(t, err)
	require.Len(t, plan.Attempts, 1)
	assert.Equal(t, ShareUnsupportedMessage, plan.Attempts[0].Payload.Text)
}

func TestPlanShareUnknownStudent(t *testing.T) {
	svc := NewPassService(&mockStudentRepo{}, nil, nil, &fakeSigner{}, nil, nil, PassConfig{})

	_, err := svc.PlanShare(context.Background(), "missing", models.ShareRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestReportShareCancellationIsNotAWarning(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	recorder := &shareRecorder{}
	svc := NewPassService(anaRepo(), nil, nil, &fakeSigner{}, recorder, zap.New(core), PassConfig{})

	require.NoError(t, svc.ReportShare(context.Background(), "abc", models.ShareResultRequest{Method: models.ShareMethodNative, Outcome: models.ShareOutcomeCancelled}))
	assert.Equal(t, 0, logs.FilterLevelExact(zapcore.WarnLevel).Len())

	require.NoError(t, svc.ReportShare(context.Background(), "abc", models.ShareResultRequest{Method: models.ShareMethodClipboard, Outcome: models.ShareOutcomeFailed, Error: "denied"}))
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())
	assert.Equal(t, []string{"native:cancelled", "clipboard:failed"}, recorder.outcomes)

	err := svc.ReportShare(context.Background(), "abc", models.ShareResultRequest{Method: "fax", Outcome: models.ShareOutcomeShared})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Len(t, recorder.outcomes, 2)
}

func TestResolveShareToken(t *testing.T) {
	ctx := context.Background()
	signer := storage.NewSignedURLSigner("secret", time.Hour)
	svc := NewPassService(anaRepo(), nil, nil, signer, nil, nil, PassConfig{})

	token, _, err := signer.Generate("abc")
	require.NoError(t, err)

	pass, err := svc.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "Ana Silva", pass.Name)
	assert.Equal(t, "2026-123", pass.RegistrationNumber)

	_, err = svc.Resolve(ctx, token+"x")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	expired := NewPassService(anaRepo(), nil, nil, &fakeSigner{parseErr: storage.ErrTokenExpired}, nil, nil, PassConfig{})
	_, err = expired.Resolve(ctx, "whatever")
	require.Error(t, err)
	assert.Equal(t, "share link expired", appErrors.FromError(err).Message)
}

type stubPhotos struct {
	data []byte
}

func (s stubPhotos) Load(ctx context.Context, student models.Student) ([]byte, string, bool) {
	return s.data, "image/png", s.data != nil
}

func TestPassPDF(t *testing.T) {
	signer := storage.NewSignedURLSigner("secret", time.Hour)
	svc := NewPassService(anaRepo(), stubPhotos{data: pngBytes(t)}, nil, signer, nil, nil, PassConfig{PublicBaseURL: "http://localhost:8080", APIPrefix: "/api/v1"})

	body, filename, err := svc.PDF(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "carteirinha-2026-123.pdf", filename)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	_, _, err = svc.PDF(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestPassPDFForNamelessRecord(t *testing.T) {
	repo := &mockStudentRepo{items: []models.Student{{ID: "blank", Name: "  ", RegistrationNumber: "2026-500"}}}
	svc := NewPassService(repo, nil, nil, &fakeSigner{}, nil, nil, PassConfig{})

	body, filename, err := svc.PDF(context.Background(), "blank")
	require.NoError(t, err)
	assert.Equal(t, "carteirinha-2026-500.pdf", filename)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
	assert.Equal(t, unnamedStudent, cardName(" "))
	assert.Equal(t, "Ana", cardName("Ana"))
}

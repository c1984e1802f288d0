package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/douradinams/Douradinams/internal/models"
	"github.com/douradinams/Douradinams/pkg/jobs"
	appErrors "github.com/douradinams/Douradinams/pkg/errors"
	"github.com/douradinams/Douradinams/pkg/storage"
)

type photoStudentRepository interface {
	GetByID(ctx context.Context, id string) (*models.Student, error)
	Save(ctx context.Context, patch models.StudentPatch) (models.Student, error)
}

type photoCleanupQueue interface {
	Enqueue(task jobs.Task[string]) error
}

// PhotoConfig tunes photo uploads.
type PhotoConfig struct {
	MaxBytes     int64
	AllowedMIMEs []string
	// URLPrefix is the API prefix photo URLs are served under, e.g. "/api/v1".
	URLPrefix string
}

var photoExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// PhotoService stores student photos and links them to the student record.
type PhotoService struct {
	students photoStudentRepository
	store    storage.ObjectStore
	cleanup  photoCleanupQueue
	logger   *zap.Logger
	cfg      PhotoConfig
	allowed  map[string]struct{}
}

// NewPhotoService constructs a PhotoService.
func NewPhotoService(students photoStudentRepository, store storage.ObjectStore, logger *zap.Logger, cfg PhotoConfig) *PhotoService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = 5 * 1024 * 1024
	}
	if len(cfg.AllowedMIMEs) == 0 {
		cfg.AllowedMIMEs = []string{"image/jpeg", "image/png", "image/webp"}
	}
	cfg.URLPrefix = strings.TrimRight(cfg.URLPrefix, "/")
	allowed := make(map[string]struct{}, len(cfg.AllowedMIMEs))
	for _, m := range cfg.AllowedMIMEs {
		allowed[strings.ToLower(m)] = struct{}{}
	}
	return &PhotoService{students: students, store: store, logger: logger, cfg: cfg, allowed: allowed}
}

// WithCleanupQueue hands replaced photo objects to a background queue instead
// of removing them inline.
func (s *PhotoService) WithCleanupQueue(q photoCleanupQueue) *PhotoService {
	s.cleanup = q
	return s
}

// DeleteObject removes a stored photo object. It is the cleanup queue handler.
func (s *PhotoService) DeleteObject(ctx context.Context, task jobs.Task[string]) error {
	return s.store.Delete(ctx, task.Payload)
}

// Upload stores a new photo for the student, points photoUrl at it and marks
// the student Active. The previous photo object is removed.
func (s *PhotoService) Upload(ctx context.Context, studentID string, r io.Reader) (*models.Student, error) {
	if !validKeySegment(studentID) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, MsgStudentNotFound)
	}
	student, err := s.loadStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(r, s.cfg.MaxBytes+1))
	if err != nil {
		return nil, appErrors.ErrValidation.WithCause(err, "failed to read photo")
	}
	if int64(len(data)) > s.cfg.MaxBytes {
		return nil, appErrors.Clone(appErrors.ErrPayloadTooLarge, fmt.Sprintf("photo exceeds %d bytes", s.cfg.MaxBytes))
	}
	if len(data) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "photo is empty")
	}

	contentType := http.DetectContentType(data)
	if _, ok := s.allowed[contentType]; !ok {
		return nil, appErrors.Clone(appErrors.ErrUnsupportedMedia, fmt.Sprintf("photo type %s is not allowed", contentType))
	}
	ext, ok := photoExtensions[contentType]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrUnsupportedMedia, fmt.Sprintf("photo type %s is not allowed", contentType))
	}

	file := uuid.NewString() + ext
	key := photoKey(studentID, file)
	if err := s.store.Put(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		s.logger.Error("store photo", zap.String("student_id", studentID), zap.Error(err))
		return nil, appErrors.ErrInternal.WithCause(err, "failed to store photo")
	}

	url := s.photoURL(studentID, file)
	active := models.StudentStatusActive
	updated, err := s.students.Save(ctx, models.StudentPatch{ID: studentID, PhotoURL: &url, Status: &active})
	if err != nil {
		s.logger.Error("link photo", zap.String("student_id", studentID), zap.Error(err))
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			s.logger.Warn("remove orphaned photo", zap.String("key", key), zap.Error(delErr))
		}
		return nil, appErrors.ErrInternal.WithCause(err, "failed to save student")
	}

	if previous, ok := s.fileFromURL(studentID, student.PhotoURL); ok && previous != file {
		s.removePrevious(ctx, studentID, photoKey(studentID, previous))
	}
	return &updated, nil
}

func (s *PhotoService) removePrevious(ctx context.Context, studentID, key string) {
	if s.cleanup != nil {
		err := s.cleanup.Enqueue(jobs.Task[string]{ID: studentID, Payload: key})
		if err == nil {
			return
		}
		s.logger.Warn("queue photo cleanup", zap.String("key", key), zap.Error(err))
	}
	if err := s.store.Delete(ctx, key); err != nil {
		s.logger.Warn("remove previous photo", zap.String("student_id", studentID), zap.Error(err))
	}
}

// Open streams a stored photo. The caller closes the reader.
func (s *PhotoService) Open(ctx context.Context, studentID, file string) (io.ReadCloser, string, error) {
	if !validKeySegment(studentID) || !validKeySegment(file) {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "photo not found")
	}
	rc, err := s.store.Get(ctx, photoKey(studentID, file))
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, "", appErrors.Clone(appErrors.ErrNotFound, "photo not found")
		}
		s.logger.Error("open photo", zap.String("student_id", studentID), zap.Error(err))
		return nil, "", appErrors.ErrInternal.WithCause(err, "failed to open photo")
	}
	return rc, contentTypeForFile(file), nil
}

// Load returns the bytes of the student's stored photo. ok is false when the
// student has no photo held by this service.
func (s *PhotoService) Load(ctx context.Context, student models.Student) ([]byte, string, bool) {
	file, ok := s.fileFromURL(student.ID, student.PhotoURL)
	if !ok {
		return nil, "", false
	}
	rc, contentType, err := s.Open(ctx, student.ID, file)
	if err != nil {
		s.logger.Warn("load photo", zap.String("student_id", student.ID), zap.Error(err))
		return nil, "", false
	}
	defer rc.Close()
	data, err := io.ReadAll(io.LimitReader(rc, s.cfg.MaxBytes+1))
	if err != nil {
		s.logger.Warn("read photo", zap.String("student_id", student.ID), zap.Error(err))
		return nil, "", false
	}
	return data, contentType, true
}

func (s *PhotoService) loadStudent(ctx context.Context, id string) (*models.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, MsgStudentNotFound)
		}
		return nil, appErrors.ErrInternal.WithCause(err, "failed to load student")
	}
	return student, nil
}

func (s *PhotoService) photoURL(studentID, file string) string {
	return fmt.Sprintf("%s/students/%s/photo/%s", s.cfg.URLPrefix, studentID, file)
}

func (s *PhotoService) fileFromURL(studentID, url string) (string, bool) {
	prefix := fmt.Sprintf("%s/students/%s/photo/", s.cfg.URLPrefix, studentID)
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	file := strings.TrimPrefix(url, prefix)
	if file == "" || strings.Contains(file, "/") {
		return "", false
	}
	return file, true
}

// validKeySegment rejects values that would escape their directory once
// joined into an object key.
func validKeySegment(v string) bool {
	return v != "" && v != "." && v != ".." && !strings.ContainsAny(v, "/\\")
}

func photoKey(studentID, file string) string {
	return path.Join("students", studentID, file)
}

func contentTypeForFile(file string) string {
	for mime, ext := range photoExtensions {
		if strings.HasSuffix(file, ext) {
			return mime
		}
	}
	return "application/octet-stream"
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/douradinams/Douradinams/api/swagger"
	"github.com/douradinams/Douradinams/internal/handler"
	"github.com/douradinams/Douradinams/internal/middleware"
	"github.com/douradinams/Douradinams/internal/repository"
	"github.com/douradinams/Douradinams/internal/service"
	"github.com/douradinams/Douradinams/pkg/config"
	"github.com/douradinams/Douradinams/pkg/jobs"
	"github.com/douradinams/Douradinams/pkg/kvstore"
	"github.com/douradinams/Douradinams/pkg/logger"
	corsmiddleware "github.com/douradinams/Douradinams/pkg/middleware/cors"
	reqidmiddleware "github.com/douradinams/Douradinams/pkg/middleware/requestid"
	"github.com/douradinams/Douradinams/pkg/storage"
)

// @title School Pass API
// @version 1.0.0
// @description Student transport pass registration, login and sharing
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logr *zap.Logger) error {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metricsSvc := service.NewMetricsService()

	backend, err := openStore(cfg, logr)
	if err != nil {
		return err
	}
	defer backend.close()

	photoStore, err := openPhotoStore(ctx, cfg)
	if err != nil {
		return err
	}

	store := kvstore.NewInstrumented(backend.store, metricsSvc)
	collections := repository.NewCollections(store, logr)
	studentRepo := repository.NewStudentRepository(collections)
	schoolRepo := repository.NewSchoolRepository(collections)
	staffRepo := repository.NewStaffRepository(collections)
	settingsRepo := repository.NewSettingsRepository(collections)

	validate := validator.New()
	authSvc := service.NewAuthService(studentRepo, staffRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
		SupportSecret:     cfg.Support.Secret,
		SupportSecretHash: cfg.Support.SecretHash,
	}).WithMetrics(metricsSvc)
	photoSvc := service.NewPhotoService(studentRepo, photoStore, logr, service.PhotoConfig{
		MaxBytes:     cfg.Photos.MaxSizeBytes,
		AllowedMIMEs: cfg.Photos.AllowedMIMEs,
		URLPrefix:    cfg.APIPrefix,
	})
	cleanup := jobs.New[string]("photo-cleanup", photoSvc.DeleteObject, jobs.Config{
		Workers:    2,
		MaxRetries: 3,
		RetryDelay: 2 * time.Second,
		Logger:     logr,
	})
	cleanup.Start(ctx)
	defer cleanup.Stop()
	photoSvc.WithCleanupQueue(cleanup)
	signer := storage.NewSignedURLSigner(cfg.Share.SigningSecret, cfg.Share.LinkTTL)
	passSvc := service.NewPassService(studentRepo, photoSvc, nil, signer, metricsSvc, logr, service.PassConfig{
		PublicBaseURL: cfg.Share.PublicBaseURL,
		APIPrefix:     cfg.APIPrefix,
	})

	handlers := handler.Handlers{
		Auth:       handler.NewAuthHandler(authSvc),
		Navigation: handler.NewNavigationHandler(),
		Settings:   handler.NewSettingsHandler(service.NewSettingsService(settingsRepo, validate, logr, cfg.Welcome.DismissAfter)),
		Students: handler.NewStudentHandler(
			service.NewStudentService(studentRepo, schoolRepo, validate, logr),
			service.NewExportService(studentRepo, schoolRepo, logr, nil, nil),
			photoSvc,
		),
		Passes:  handler.NewPassHandler(passSvc),
		Schools: handler.NewSchoolHandler(service.NewSchoolService(schoolRepo, studentRepo, validate, logr)),
		Staff:   handler.NewStaffHandler(service.NewStaffService(staffRepo, validate, logr)),
		Metrics: handler.NewMetricsHandler(metricsSvc.Handler(), backend.ready, logr),
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	handler.RegisterRoutes(r, cfg.APIPrefix, middleware.JWT(authSvc), middleware.OptionalJWT(authSvc), handlers)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "store", cfg.Store.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

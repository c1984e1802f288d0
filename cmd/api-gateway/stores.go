package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/douradinams/Douradinams/internal/handler"
	"github.com/douradinams/Douradinams/pkg/config"
	"github.com/douradinams/Douradinams/pkg/database"
	"github.com/douradinams/Douradinams/pkg/kvstore"
	"github.com/douradinams/Douradinams/pkg/storage"
)

type storeBackend struct {
	store kvstore.Store
	ready handler.ReadinessCheck
	close func()
}

// openStore connects the configured key-value backend, migrating SQL schemas.
func openStore(cfg *config.Config, logr *zap.Logger) (*storeBackend, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		logr.Warn("using in-memory store; records are lost on restart")
		return &storeBackend{store: kvstore.NewMemoryStore(), close: func() {}}, nil
	case config.StoreDriverSQLite, "":
		db, err := database.NewSQLite(cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(db, "sqlite3", logr); err != nil {
			db.Close()
			return nil, err
		}
		return &storeBackend{
			store: kvstore.NewSQLStore(db),
			ready: db.PingContext,
			close: func() { db.Close() },
		}, nil
	case config.StoreDriverPostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(db, "postgres", logr); err != nil {
			db.Close()
			return nil, err
		}
		return &storeBackend{
			store: kvstore.NewSQLStore(db),
			ready: db.PingContext,
			close: func() { db.Close() },
		}, nil
	case config.StoreDriverRedis:
		client, err := database.NewRedis(cfg.Redis)
		if err != nil {
			return nil, err
		}
		return &storeBackend{
			store: kvstore.NewRedisStore(client, cfg.Store.KeyPrefix),
			ready: func(ctx context.Context) error { return client.Ping(ctx).Err() },
			close: func() { client.Close() },
		}, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// openPhotoStore returns the object store for student photos.
func openPhotoStore(ctx context.Context, cfg *config.Config) (storage.ObjectStore, error) {
	switch cfg.Photos.Driver {
	case config.PhotoDriverLocal, "":
		return storage.NewLocalStorage(cfg.Photos.StorageDir)
	case config.PhotoDriverMinio:
		return storage.NewMinioStorage(ctx, cfg.Minio)
	default:
		return nil, fmt.Errorf("unknown photo driver %q", cfg.Photos.Driver)
	}
}

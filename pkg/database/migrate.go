package database

import (
	"embed"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// goose keeps its dialect and filesystem in package globals.
var migrateMu sync.Mutex

// Migrate applies the embedded schema migrations. dialect is a goose dialect
// name such as "postgres" or "sqlite3".
func Migrate(db *sqlx.DB, dialect string, logger *zap.Logger) error {
	migrateMu.Lock()
	defer migrateMu.Unlock()

	if logger == nil {
		logger = zap.NewNop()
	}
	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(gooseLogger{l: logger.Sugar()})
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}
	if err := goose.Up(db.DB, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

type gooseLogger struct {
	l *zap.SugaredLogger
}

func (g gooseLogger) Fatalf(format string, v ...interface{}) { g.l.Fatalf(format, v...) }

func (g gooseLogger) Printf(format string, v ...interface{}) { g.l.Debugf(format, v...) }

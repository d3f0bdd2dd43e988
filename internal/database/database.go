package database

import (
	"context"
	"fmt"
	"strings"

	_ "github.com/lib/pq" // registers the "postgres" database/sql driver
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lexibazaar/marketplace/internal/config"
	"github.com/lexibazaar/marketplace/internal/entities"
)

type Database struct {
	DB     *gorm.DB
	Driver config.DatabaseDriver
}

func NewDatabase(cfg config.Database) (*Database, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(parseLogLevel(cfg.LogLevel)),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Database{DB: db, Driver: cfg.Driver}, nil
}

// Migrate creates or updates every table the application uses.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entities.User{},
		&entities.Dictionary{},
		&entities.Word{},
		&entities.Purchase{},
		&entities.LearningProgress{},
		&entities.AuditEvent{},
	)
}

func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func dialectorFor(cfg config.Database) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverSQLite, "":
		return sqlite.Open(sqliteDSN(cfg.Path)), nil
	case config.DriverPostgres:
		return postgres.New(postgres.Config{
			DriverName: "postgres",
			DSN:        cfg.DSN,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// sqliteDSN adds a busy timeout so concurrent writers wait for the lock.
func sqliteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path
	}
	return path + "?_busy_timeout=5000"
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

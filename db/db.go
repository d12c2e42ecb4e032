// Package db provides the MySQL database connection used by the service.
//
// It wraps gorm with the project's zap logger, connection pool settings,
// and schema migration for the service's models.
package db

import (
	"context"

	"gorm.io/gorm"
)

// Database is the interface for the database
type Database interface {
	DB() (*gorm.DB, error)
	Ping(ctx context.Context) error
	AutoMigrate(models ...any) error
	Close() error
}

package postgres

import (
	"fmt"
	"time"

	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	maxOpenConns    = 10
	maxIdleConns    = 5
	connMaxLifetime = 30 * time.Minute
)

var gormOpen = gorm.Open

// NewConnection opens a pooled gorm handle on dsn. The connection is not
// verified; callers ping when they need to know the datastore is up.
// Unique-constraint violations surface as gorm.ErrDuplicatedKey.
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gormOpen(gormpostgres.New(gormpostgres.Config{
		DSN: dsn,
		// hosted poolers (pgbouncer in transaction mode) reject
		// server-side prepared statements
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt:          false,
		TranslateError:       true,
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	return db, nil
}

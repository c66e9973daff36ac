package client

import (
	"fmt"
	"treadmill-storefront/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// InitSqliteClient opens the catalog database and migrates its tables. The
// default DSN is an in-memory database, so the catalog is rebuilt on every
// start.
func InitSqliteClient(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(databaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}

	// an in-memory database lives only as long as one of its connections
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := db.AutoMigrate(
		&model.Product{},
		&model.Slide{},
	); err != nil {
		return nil, fmt.Errorf("migrate catalog: %w", err)
	}

	return db, nil
}

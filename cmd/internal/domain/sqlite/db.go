package sqlite

import (
	"meetapp/cmd/internal/domain/entity"
	"time"

	"github.com/labstack/gommon/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const MemoryPath = ":memory:"

const slowQueryThreshold = 200 * time.Millisecond

// newLogger reports slow and failed queries. Missing rows are an expected
// outcome of every lookup and are not logged.
func newLogger(w logger.Writer) logger.Interface {
	return logger.New(w, logger.Config{
		SlowThreshold:             slowQueryThreshold,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

// Init opens the SQLite database at path and migrates every entity.
// Use MemoryPath for a throwaway database.
func Init(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: newLogger(log.New("gorm")),
	})
	if err != nil {
		return nil, err
	}

	// SQLite allows a single writer, and an in-memory database only
	// lives as long as its connection.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	if path != MemoryPath {
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	err = db.AutoMigrate(
		&entity.User{},
		&entity.File{},
		&entity.Meetup{},
		&entity.Subscription{},
		&entity.Job{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}

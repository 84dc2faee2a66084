package database

import (
	"fmt"
	"os"
	"path/filepath"

	"consultancy-backend/config"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Connect opens the configured database and stores it in DB.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite":
		if cfg.SQLitePath == ":memory:" {
			db, err := OpenMemory("consultancy")
			if err != nil {
				return nil, err
			}
			DB = db
			return db, nil
		}
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
		dialector = sqlite.Open(cfg.SQLitePath + "?_foreign_keys=1")
	default:
		dialector = postgres.Open(cfg.DatabaseURL)
	}

	db, err := Open(dialector)
	if err != nil {
		return nil, err
	}
	DB = db
	return db, nil
}

// Open opens a GORM session with the settings the services rely on.
// TranslateError maps driver unique violations to gorm.ErrDuplicatedKey.
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("could not connect to database: %w", err)
	}
	return db, nil
}

// OpenMemory opens a named in-memory SQLite database. It is pinned to a single
// connection so every session sees the same data, which means callers must not
// use the outer handle while a transaction is open.
func OpenMemory(name string) (*gorm.DB, error) {
	db, err := Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", name)))
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

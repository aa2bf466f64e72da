package db

import (
	"fmt"
	"log/slog"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// NewSQLiteConnection opens a SQLite database at path. ":memory:" gives a
// private in-memory database.
func NewSQLiteConnection(path string) (*Database, error) {
	if path == "" {
		path = ":memory:"
	}

	db, err := gorm.Open(sqlite.Open(path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	// SQLite serialises writers; one connection also keeps :memory: shared.
	sqlDB.SetMaxOpenConns(1)

	slog.Info("Database connection established", "dialect", "sqlite", "path", path)

	return &Database{db: db, dialect: "sqlite"}, nil
}

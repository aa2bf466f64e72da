//go:build integration

package mock

import (
	"database/sql"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Db is a private in-memory SQLite database.
type Db struct {
	DbConn *gorm.DB
	models []any
}

// NewDb opens a fresh in-memory database and migrates models.
func NewDb(models ...any) (*Db, error) {
	dbSQL, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}

	// Every connection to :memory: is a different database.
	dbSQL.SetMaxOpenConns(1)

	dbConn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := dbConn.AutoMigrate(models...); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return &Db{DbConn: dbConn, models: models}, nil
}

// Count returns the number of rows stored for model.
func (d *Db) Count(model any) (int64, error) {
	var count int64
	err := d.DbConn.Model(model).Count(&count).Error
	return count, err
}

// Close releases the connection, dropping the database.
func (d *Db) Close() error {
	sqlDB, err := d.DbConn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

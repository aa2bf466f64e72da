package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/expense-tracker/backend/config"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

func TestOpenSQLite(t *testing.T) {
	t.Run("in memory", func(t *testing.T) {
		database, err := Open(&config.DatabaseConfig{URL: "sqlite://:memory:"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		defer database.Close()

		if database.Dialect() != "sqlite" {
			t.Errorf("expected sqlite, got %s", database.Dialect())
		}
		if err := database.AutoMigrate(model.AllModels()...); err != nil {
			t.Fatalf("expected migration to succeed, got %v", err)
		}
		if err := database.HealthCheck(context.Background()); err != nil {
			t.Errorf("expected healthy database, got %v", err)
		}
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "expenses.db")
		database, err := Open(&config.DatabaseConfig{URL: "sqlite://" + path})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if err := database.AutoMigrate(model.AllModels()...); err != nil {
			t.Fatalf("expected migration to succeed, got %v", err)
		}
		if !database.DB().Migrator().HasTable(&model.ExpenseModel{}) {
			t.Error("expected expenses table to exist")
		}
		if err := database.Close(); err != nil {
			t.Errorf("expected clean close, got %v", err)
		}
		if err := database.HealthCheck(context.Background()); err == nil {
			t.Error("expected health check to fail after close")
		}
	})
}

package store

import (
	"context"
	"fmt"
	"log"
	"os"

	domaintask "github.com/milobedini/milife-backend/domain/task"
	domainuser "github.com/milobedini/milife-backend/domain/user"

	"github.com/go-monolith/mono"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// StoreModule owns the single long-lived database handle shared by all
// request handlers. It opens the connection, runs migrations and exposes
// the handle to dependent modules via DB().
type StoreModule struct {
	db     *gorm.DB
	dbPath string
}

// Compile-time interface checks.
var _ mono.Module = (*StoreModule)(nil)
var _ mono.HealthCheckableModule = (*StoreModule)(nil)

// NewModule creates a new StoreModule.
func NewModule() *StoreModule {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "milife.db"
	}
	return &StoreModule{
		dbPath: dbPath,
	}
}

// Name returns the module name.
func (m *StoreModule) Name() string {
	return "store"
}

// DB returns the shared database handle. It is nil until Start has run.
func (m *StoreModule) DB() *gorm.DB {
	return m.db
}

// Start opens the SQLite database and runs migrations.
func (m *StoreModule) Start(_ context.Context) error {
	// Configure GORM logger based on environment
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "true" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		// Unique constraint violations surface as gorm.ErrDuplicatedKey so
		// repositories can map them to domain conflicts.
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	if err := m.db.AutoMigrate(
		&domainuser.User{},
		&domaintask.Task{},
		&domaintask.UserTask{},
		&domaintask.TaskCompletion{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Printf("[store] Module started (database: %s)", m.dbPath)
	return nil
}

// Stop gracefully closes the database connection.
func (m *StoreModule) Stop(_ context.Context) error {
	if m.db == nil {
		return nil
	}

	log.Println("[store] Closing database connection...")

	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	log.Println("[store] Database connection closed")
	return nil
}

// Health returns the health status of the module.
func (m *StoreModule) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get sql.DB: %v", err),
		}
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"driver": "sqlite",
			"path":   m.dbPath,
		},
	}
}

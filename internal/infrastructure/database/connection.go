package database

import (
	"fmt"
	"sync"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/infrastructure/persistence/models"
	sharedConfig "github.com/jhoncarter0815-dev/telegram-ai-bot/internal/shared/config"
	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/shared/logger"
)

var (
	db   *gorm.DB
	dbMu sync.RWMutex
)

// Init opens the SQLite database and migrates the schema.
func Init(cfg *sharedConfig.DatabaseConfig) error {
	dsn := fmt.Sprintf("%s?_busy_timeout=5000&_journal_mode=WAL", cfg.Path)

	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// SQLite handles a single writer; keep the pool small.
	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 1
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)

	if err := database.AutoMigrate(
		&models.UserModel{},
		&models.SubscriptionModel{},
		&models.MessageModel{},
		&models.PaymentModel{},
		&models.DailyStatsModel{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	dbMu.Lock()
	db = database
	dbMu.Unlock()

	logger.Info("database ready", "path", cfg.Path)
	return nil
}

// Get returns the database handle.
func Get() *gorm.DB {
	dbMu.RLock()
	defer dbMu.RUnlock()
	return db
}

// Close closes the database connection.
func Close() error {
	dbMu.RLock()
	currentDB := db
	dbMu.RUnlock()

	if currentDB == nil {
		return nil
	}

	sqlDB, err := currentDB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	logger.Info("database connection closed")
	return nil
}

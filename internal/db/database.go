package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ikkim/catalog-console/config"
	appLogger "github.com/ikkim/catalog-console/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrDisabled is returned by Initialize when the submission log is turned off
var ErrDisabled = errors.New("submission log database is disabled")

var DB *gorm.DB

// Initialize opens the postgres connection that backs the submission log
// and checks it answers within five seconds.
func Initialize(cfg *config.DatabaseConfig) error {
	if !cfg.Enabled {
		return ErrDisabled
	}
	appLogger.Info("Connecting to submission log database", map[string]interface{}{
		"host":     cfg.Host,
		"database": cfg.DBName,
	})

	conn, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	// one insert per submit
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(4)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return fmt.Errorf("submission log database unreachable: %w", err)
	}

	DB = conn
	appLogger.Info("Submission log database ready")
	return nil
}

// Close closes the connection opened by Initialize, if any
func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	DB = nil
	return sqlDB.Close()
}

func GetDB() *gorm.DB {
	return DB
}

package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"h2o-bounty/configs"
	"h2o-bounty/pkg/logger"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// DSN builds the lib/pq connection string for dbName.
func DSN(cfg configs.Config, dbName string) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, dbName)
}

// ConnectDB opens the transaction log database.
func ConnectDB(cfg configs.Config) *sql.DB {
	db, err := sql.Open("postgres", DSN(cfg, cfg.DBName))
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)
	if err := db.Ping(); err != nil {
		logger.ErrorLogger.Error("Database connection error", zap.Error(err))
		log.Fatalf("Failed to ping database: %v", err)
	}
	return db
}

// Package db opens the GORM database connection.
package db

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	authentity "invest_backend/internal/feature/auth/domain/entity"
	ledgeradapters "invest_backend/internal/feature/ledger/adapters"
	watchentity "invest_backend/internal/feature/watchlist/domain/entity"
)

// OpenDB connects to PostgreSQL when DATABASE_URL is set and falls
// back to a local SQLite file otherwise, retrying for up to a minute
// so the service survives a database that is still starting.
func OpenDB() *gorm.DB {
	cfg := &gorm.Config{TranslateError: true}

	open := func() (*gorm.DB, error) {
		if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
			return gorm.Open(postgres.Open(dsn), cfg)
		}
		path := os.Getenv("SQLITE_PATH")
		if path == "" {
			path = "./invest.db"
		}
		return gorm.Open(sqlite.Open(path), cfg)
	}

	var (
		conn *gorm.DB
		err  error
	)
	deadline := time.Now().Add(60 * time.Second)
	for {
		conn, err = open()
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		if err := conn.AutoMigrate(
			&authentity.User{},
			&ledgeradapters.TransactionModel{},
			&ledgeradapters.PositionModel{},
			&watchentity.WatchlistEntry{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return conn
}

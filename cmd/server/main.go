package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"invest_backend/internal/app/di"
	"invest_backend/internal/app/router"
	authadapters "invest_backend/internal/feature/auth/adapters"
	authhandler "invest_backend/internal/feature/auth/transport/handler"
	authusecase "invest_backend/internal/feature/auth/usecase"
	ledgeradapters "invest_backend/internal/feature/ledger/adapters"
	ledgerhandler "invest_backend/internal/feature/ledger/transport/handler"
	ledgerusecase "invest_backend/internal/feature/ledger/usecase"
	watchadapters "invest_backend/internal/feature/watchlist/adapters"
	watchhandler "invest_backend/internal/feature/watchlist/transport/handler"
	watchusecase "invest_backend/internal/feature/watchlist/usecase"
	"invest_backend/internal/platform/cache"
	infradb "invest_backend/internal/platform/db"
	jwtmw "invest_backend/internal/platform/jwt"
	infraredis "invest_backend/internal/platform/redis"
	"invest_backend/internal/shared/symbol"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	// db
	db := infradb.OpenDB()

	// Redis (optional; only the quote cache depends on it)
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without quote cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	normalizer := symbol.Normalizer{Suffix: os.Getenv("MARKET_SUFFIX")}

	// Repository
	userRepo := authadapters.NewUserRepository(db)
	txnStore := ledgeradapters.NewTransactionStore(db)
	posStore := ledgeradapters.NewPositionStore(db)
	watchRepo := watchadapters.NewWatchlistRepository(db)

	// Quote provider: submission always hits the API directly, the
	// portfolio view goes through a short-lived Redis cache.
	quotes := di.NewQuoteProvider()
	viewQuotes := cache.NewCachingQuoteProvider(rdb, 15*time.Second, quotes, "quotes")

	// Usecase
	tokenGen := jwtmw.NewGenerator(jwtSecret, 24*time.Hour)
	authUC := authusecase.NewAuthUsecase(userRepo, tokenGen)
	ledgerUC := ledgerusecase.NewLedgerUsecase(txnStore, posStore, quotes, viewQuotes, normalizer)
	watchUC := watchusecase.NewWatchlistUsecase(watchRepo, normalizer)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	ledgerH := ledgerhandler.NewLedgerHandler(ledgerUC)
	watchH := watchhandler.NewWatchlistHandler(watchUC)

	r := router.NewRouter(authH, ledgerH, watchH, jwtSecret)

	// Nightly reconciliation: replay every sub-ledger so a position
	// write lost between log append and position update cannot stay
	// stale past the next run.
	c := cron.New()
	if _, err := c.AddFunc("30 3 * * *", func() {
		if err := ledgerUC.ReconcileAll(context.Background()); err != nil {
			slog.Error("scheduled reconciliation failed", "error", err)
		}
	}); err != nil {
		log.Fatalf("failed to schedule reconciliation: %v", err)
	}
	c.Start()
	defer c.Stop()

	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}

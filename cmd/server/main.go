package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/stockd/inventory-ledger/internal/adapter/handler"
	"github.com/stockd/inventory-ledger/internal/adapter/storage"
	"github.com/stockd/inventory-ledger/internal/config"
	"github.com/stockd/inventory-ledger/internal/core/domain"
	"github.com/stockd/inventory-ledger/internal/core/service"
	"github.com/stockd/inventory-ledger/internal/port"
	"github.com/stockd/inventory-ledger/pkg/logging"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()
	logger := logging.New()

	// Initialize MySQL
	db, err := sqlx.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		logger.Error("failed to open mysql", "error", err)
		os.Exit(1)
	}
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		logger.Error("failed to ping mysql", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to mysql")

	// Initialize Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		PoolSize: cfg.RedisPoolSize,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Error("failed to connect redis", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to redis")

	// Initialize adapters and service
	store := storage.NewMySQLStore(db)
	journal := storage.NewRedisJournal(rdb)
	ledger := service.NewLedger(store, journal, cfg.QueueSize)

	// Start journal worker pool
	var wg sync.WaitGroup
	for i := 0; i < cfg.WorkerCount; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			journalLoop(id, ledger.Adjustments(), journal, logger)
		}(i)
	}
	logger.Info("started journal workers", "count", cfg.WorkerCount)

	// Initialize HTTP server
	httpHandler := handler.NewHTTPHandler(ledger)
	mux := http.NewServeMux()
	httpHandler.Register(mux)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: mux,
	}

	go func() {
		logger.Info("http server listening", "addr", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("http server error", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
	logger.Info("http server stopped")

	// Close the adjustment queue and wait for workers to drain it
	ledger.Close()
	wg.Wait()
	logger.Info("journal workers stopped")

	rdb.Close()
	db.Close()
	logger.Info("connections closed")
}

// journalLoop drains applied adjustments into the journal. Journal failures
// never undo a committed stock mutation; they are logged and the adjustment
// is dropped.
func journalLoop(id int, queue <-chan domain.Adjustment, journal port.Journal, logger *slog.Logger) {
	for adj := range queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)

		if err := journal.Append(ctx, adj); err != nil {
			logger.Error("failed to journal adjustment",
				"worker", id, "adjustment", adj.ID, "item", adj.ItemName, "error", err)
		} else {
			logger.Debug("journaled adjustment",
				"worker", id, "adjustment", adj.ID, "item", adj.ItemName, "resulting", adj.Resulting)
		}

		cancel()
	}
}
